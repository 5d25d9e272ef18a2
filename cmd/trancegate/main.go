// Command trancegate applies a rhythmic gate effect to stereo WAV files.
//
// The gate chops the signal with a periodic fade envelope derived from a
// tempo and note division, or from an explicit cycle length in seconds.
//
// Usage:
//
//	trancegate process [flags] input.wav output.wav
//	trancegate demo [flags] output.wav
//	trancegate analyze [flags] dry.wav wet.wav
//
// Examples:
//
//	trancegate process --bpm 140 --division 16 in.wav out.wav
//	trancegate process --preset gate.yaml --mix 0.7 --gain=-6 in.wav out.wav
//	trancegate demo --seconds 4 --dither triangular demo.wav
//	trancegate analyze in.wav out.wav
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-gate/dsp/buffer"
	"github.com/cwbudde/algo-gate/dsp/core"
	"github.com/cwbudde/algo-gate/dsp/dither"
	"github.com/cwbudde/algo-gate/dsp/gate"
	"github.com/cwbudde/algo-gate/dsp/signal"
	"github.com/cwbudde/algo-gate/measure/envelope"
	"github.com/spf13/cobra"
)

const (
	demoAmplitude  = 0.8
	defaultDemoLen = 4.0
	defaultDemoHz  = 220.0
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "trancegate",
		Short:         "Rhythmic gate effect for stereo WAV files",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(newProcessCommand())
	root.AddCommand(newDemoCommand())
	root.AddCommand(newAnalyzeCommand())

	return root
}

// bindPresetFlags attaches the gate settings shared by process and demo.
func bindPresetFlags(cmd *cobra.Command, p *Preset, presetPath *string) {
	cmd.Flags().StringVar(presetPath, "preset", "", "YAML preset file")
	cmd.Flags().Float64VarP(&p.BPM, "bpm", "b", p.BPM,
		"tempo in beats per minute")
	cmd.Flags().IntVarP(&p.Division, "division", "n", p.Division,
		"note division (4 = quarter, 16 = sixteenth)")
	cmd.Flags().Float64VarP(&p.Duration, "duration", "d", p.Duration,
		"gate cycle length in seconds, overrides tempo")
	cmd.Flags().Float64VarP(&p.Mix, "mix", "m", p.Mix,
		"wet/dry mix between 0 and 1")
	cmd.Flags().Float64VarP(&p.Gain, "gain", "g", p.Gain,
		"output gain in dB")
}

func newProcessCommand() *cobra.Command {
	preset := DefaultPreset()

	var (
		presetPath  string
		blockFrames int
		ditherName  string
	)

	cmd := &cobra.Command{
		Use:   "process [flags] input.wav output.wav",
		Short: "Apply the gate to a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePreset(cmd, preset, presetPath)
			if err != nil {
				return err
			}
			return runProcess(args[0], args[1], p, blockFrames, ditherName)
		},
	}

	bindPresetFlags(cmd, &preset, &presetPath)
	cmd.Flags().IntVar(&blockFrames, "block", core.DefaultProcessorConfig().BlockSize,
		"frames per processing block")
	cmd.Flags().StringVar(&ditherName, "dither", "none",
		"output dither: none, rectangular, triangular, gaussian")

	return cmd
}

func newDemoCommand() *cobra.Command {
	preset := DefaultPreset()

	var (
		presetPath string
		seconds    float64
		freqHz     float64
		ditherName string
	)

	cmd := &cobra.Command{
		Use:   "demo [flags] output.wav",
		Short: "Render a gated sine tone to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePreset(cmd, preset, presetPath)
			if err != nil {
				return err
			}
			return runDemo(args[0], p, seconds, freqHz, ditherName)
		},
	}

	bindPresetFlags(cmd, &preset, &presetPath)
	cmd.Flags().Float64Var(&seconds, "seconds", defaultDemoLen, "length of the rendered tone")
	cmd.Flags().Float64Var(&freqHz, "freq", defaultDemoHz, "tone frequency in Hz")
	cmd.Flags().StringVar(&ditherName, "dither", "none",
		"output dither: none, rectangular, triangular, gaussian")

	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	var fftSize int

	cmd := &cobra.Command{
		Use:   "analyze [flags] dry.wav wet.wav",
		Short: "Report the gate envelope between a dry and a wet file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], args[1], fftSize)
		},
	}

	cmd.Flags().IntVar(&fftSize, "fft", 0,
		"FFT size for rate detection, 0 picks one covering the input")

	return cmd
}

// resolvePreset merges a preset file with explicitly set flags. Flags win
// over file values; without a file the flag values stand alone.
func resolvePreset(cmd *cobra.Command, flags Preset, path string) (Preset, error) {
	if path == "" {
		return flags, flags.Validate()
	}

	p, err := LoadPreset(path)
	if err != nil {
		return Preset{}, err
	}

	if cmd.Flags().Changed("bpm") {
		p.BPM = flags.BPM
	}
	if cmd.Flags().Changed("division") {
		p.Division = flags.Division
	}
	if cmd.Flags().Changed("duration") {
		p.Duration = flags.Duration
	}
	if cmd.Flags().Changed("mix") {
		p.Mix = flags.Mix
	}
	if cmd.Flags().Changed("gain") {
		p.Gain = flags.Gain
	}

	return p, p.Validate()
}

func runProcess(inPath, outPath string, p Preset, blockFrames int, ditherName string) error {
	if blockFrames <= 0 {
		blockFrames = core.DefaultProcessorConfig().BlockSize
	}

	quant, err := newOutputQuantizer(ditherName)
	if err != nil {
		return err
	}

	in, err := openWAV(inPath, blockFrames)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if float64(in.rate) != gate.SampleRate {
		fmt.Fprintf(os.Stderr, "warning: input rate %d Hz differs from the %.0f Hz the gate timing assumes\n",
			in.rate, gate.SampleRate)
	}

	out, err := createWAV(outPath, in.rate, blockFrames)
	if err != nil {
		return err
	}
	out.quant = quant

	g := gate.NewTranceGate()
	g.Initialize(p.Parameters())
	scale := p.GainScale()

	pool := buffer.NewPool()
	buf := pool.Get(blockFrames)
	defer pool.Put(buf)

	position := 0
	for {
		frames, err := in.ReadBlock(buf.Samples())
		if err != nil {
			_ = out.Close()
			return err
		}
		if frames == 0 {
			break
		}

		block := buf.Samples()[:2*frames]
		g.Process(position, block)
		position += frames

		if scale != 1 {
			scaleSamples(block, scale)
		}

		if err := out.WriteBlock(block, frames); err != nil {
			_ = out.Close()
			return err
		}
	}

	return out.Close()
}

func runDemo(outPath string, p Preset, seconds, freqHz float64, ditherName string) error {
	if seconds <= 0 {
		return fmt.Errorf("demo length must be > 0: %f", seconds)
	}

	quant, err := newOutputQuantizer(ditherName)
	if err != nil {
		return err
	}

	frames := int(math.Round(seconds * gate.SampleRate))

	gen := signal.NewGenerator(core.WithSampleRate(gate.SampleRate))
	samples, err := gen.StereoSine(freqHz, demoAmplitude, frames)
	if err != nil {
		return err
	}

	g := gate.NewTranceGate()
	g.Initialize(p.Parameters())
	g.Process(0, samples)

	if scale := p.GainScale(); scale != 1 {
		scaleSamples(samples, scale)
	}

	out, err := createWAV(outPath, int(gate.SampleRate), frames)
	if err != nil {
		return err
	}
	out.quant = quant

	if err := out.WriteBlock(samples, frames); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func runAnalyze(dryPath, wetPath string, fftSize int) error {
	dry, err := readAllWAV(dryPath)
	if err != nil {
		return err
	}

	wet, err := readAllWAV(wetPath)
	if err != nil {
		return err
	}

	if dry.rate != wet.rate {
		fmt.Fprintf(os.Stderr, "warning: sample rates differ: %d Hz vs %d Hz\n", dry.rate, wet.rate)
	}

	res, err := envelope.Measure(dry.samples, wet.samples, envelope.Config{
		SampleRate: float64(dry.rate),
		FFTSize:    fftSize,
	})
	if err != nil {
		return err
	}

	return printReport(os.Stdout, res)
}

func scaleSamples(samples []float64, scale float64) {
	for i := range samples {
		samples[i] *= scale
	}
}

// newOutputQuantizer resolves a dither name for the 16-bit output stage.
// "none" keeps the plain clamp-and-truncate conversion.
func newOutputQuantizer(name string) (*dither.Quantizer, error) {
	var t dither.Type

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "rectangular":
		t = dither.Rectangular
	case "triangular":
		t = dither.Triangular
	case "gaussian":
		t = dither.Gaussian
	default:
		return nil, fmt.Errorf("unknown dither %q (none, rectangular, triangular, gaussian)", name)
	}

	return dither.NewQuantizer(dither.WithType(t), dither.WithBitDepth(outputBitDepth))
}

func printReport(w io.Writer, res envelope.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Metric\tValue\n")
	fmt.Fprintf(tw, "------\t-----\n")
	fmt.Fprintf(tw, "Floor gain\t%.4f\n", res.FloorGain)
	fmt.Fprintf(tw, "Peak gain\t%.4f\n", res.PeakGain)
	fmt.Fprintf(tw, "Depth\t%.4f\n", res.Depth)
	fmt.Fprintf(tw, "Depth [dB]\t%.2f\n", res.Depth_dB)
	fmt.Fprintf(tw, "Rate [Hz]\t%.2f\n", res.RateHz)
	fmt.Fprintf(tw, "Period [frames]\t%d\n", res.PeriodFrames)

	return tw.Flush()
}
