package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-gate/dsp/core"
	"github.com/cwbudde/algo-gate/dsp/dither"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	outputBitDepth = 16
	outputChannels = 2
	wavFormatPCM   = 1
)

// wavReader streams a WAV file as interleaved stereo float64 frames.
// Mono input is widened to both channels.
type wavReader struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	scale    float64
	chunk    *audio.IntBuffer
}

func openWAV(path string, blockFrames int) (*wavReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := d.Format()
	if format.NumChannels < 1 || format.NumChannels > 2 {
		_ = f.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", format.NumChannels)
	}

	return &wavReader{
		file:     f,
		decoder:  d,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(d.BitDepth),
		scale:    1 / maxSampleValue(int(d.BitDepth)),
		chunk: &audio.IntBuffer{
			Format: format,
			Data:   make([]int, blockFrames*format.NumChannels),
		},
	}, nil
}

// ReadBlock fills dst with interleaved stereo samples and reports how many
// frames were produced. Zero frames means the file is exhausted.
func (r *wavReader) ReadBlock(dst []float64) (int, error) {
	maxFrames := len(dst) / 2
	if maxFrames == 0 {
		return 0, nil
	}

	r.chunk.Data = r.chunk.Data[:cap(r.chunk.Data)]
	if want := maxFrames * r.channels; want < len(r.chunk.Data) {
		r.chunk.Data = r.chunk.Data[:want]
	}

	n, err := r.decoder.PCMBuffer(r.chunk)
	if err != nil {
		return 0, fmt.Errorf("read samples: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	frames := n / r.channels

	if r.channels == 1 {
		for i := 0; i < frames; i++ {
			v := float64(r.chunk.Data[i]) * r.scale
			dst[2*i] = v
			dst[2*i+1] = v
		}
		return frames, nil
	}

	for i := 0; i < 2*frames; i++ {
		dst[i] = float64(r.chunk.Data[i]) * r.scale
	}

	return frames, nil
}

func (r *wavReader) Close() error {
	return r.file.Close()
}

// wavWriter writes interleaved stereo float64 frames as 16-bit PCM.
// A quantizer, when set, replaces the plain clamp-and-truncate conversion.
type wavWriter struct {
	file    *os.File
	encoder *wav.Encoder
	chunk   *audio.IntBuffer
	quant   *dither.Quantizer
}

func createWAV(path string, sampleRate, blockFrames int) (*wavWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	return &wavWriter{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, outputBitDepth, outputChannels, wavFormatPCM),
		chunk: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: outputChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: outputBitDepth,
			Data:           make([]int, 2*blockFrames),
		},
	}, nil
}

// WriteBlock writes frames interleaved stereo frames from src. Samples are
// clamped to [-1, 1] before quantization.
func (w *wavWriter) WriteBlock(src []float64, frames int) error {
	need := 2 * frames
	if need > len(src) {
		return fmt.Errorf("write block: %d frames exceed source length %d", frames, len(src))
	}

	if need > cap(w.chunk.Data) {
		w.chunk.Data = make([]int, need)
	}
	w.chunk.Data = w.chunk.Data[:need]

	if w.quant != nil {
		for i := 0; i < need; i++ {
			w.chunk.Data[i] = w.quant.ProcessInteger(core.Clamp(src[i], -1, 1))
		}
	} else {
		for i := 0; i < need; i++ {
			w.chunk.Data[i] = int(core.Clamp(src[i], -1, 1) * maxInt16)
		}
	}

	if err := w.encoder.Write(w.chunk); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}

	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("finalize output: %w", err)
	}

	return w.file.Close()
}

// clip holds a fully decoded stereo file.
type clip struct {
	samples []float64
	rate    int
}

func readAllWAV(path string) (clip, error) {
	blockFrames := core.DefaultProcessorConfig().BlockSize

	r, err := openWAV(path, blockFrames)
	if err != nil {
		return clip{}, err
	}
	defer func() { _ = r.Close() }()

	var samples []float64
	block := make([]float64, 2*blockFrames)

	for {
		frames, err := r.ReadBlock(block)
		if err != nil {
			return clip{}, err
		}
		if frames == 0 {
			break
		}
		samples = append(samples, block[:2*frames]...)
	}

	if len(samples) == 0 {
		return clip{}, fmt.Errorf("no audio data in %s", path)
	}

	return clip{samples: samples, rate: r.rate}, nil
}

func maxSampleValue(bitDepth int) float64 {
	switch bitDepth {
	case 16:
		return maxInt16
	case 24:
		return maxInt24
	case 32:
		return maxInt32
	default:
		return maxInt16
	}
}
