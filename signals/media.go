package signals

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"trustlens/config"
	"trustlens/types"
)

// MediaTools covers the local ffmpeg work the video arm needs before any
// collaborator sees the content.
type MediaTools interface {
	// ExtractAudioTrack demuxes the audio track as MP3.
	ExtractAudioTrack(video []byte) ([]byte, error)
	// ExtractKeyFrame grabs one representative frame as JPEG.
	ExtractKeyFrame(video []byte) ([]byte, error)
}

// FFmpegTools is the production MediaTools implementation.
type FFmpegTools struct{}

func (FFmpegTools) ExtractAudioTrack(video []byte) ([]byte, error) {
	return runFFmpeg(video, "audio.mp3", ffmpeg.KwArgs{
		"vn":     "",
		"acodec": "libmp3lame",
		"b:a":    "128k",
	})
}

func (FFmpegTools) ExtractKeyFrame(video []byte) ([]byte, error) {
	return runFFmpeg(video, "frame.jpg", ffmpeg.KwArgs{
		"ss":      config.KeyFrameOffset,
		"vframes": 1,
		"q:v":     2,
	})
}

// runFFmpeg round-trips the clip through temp files; ffmpeg wants paths.
func runFFmpeg(input []byte, outName string, args ffmpeg.KwArgs) ([]byte, error) {
	id := uuid.New().String()
	inPath := filepath.Join(config.TempDir, fmt.Sprintf("%s_in", id))
	outPath := filepath.Join(config.TempDir, fmt.Sprintf("%s_%s", id, outName))

	if err := os.WriteFile(inPath, input, 0o600); err != nil {
		return nil, fmt.Errorf("write temp input: %w", err)
	}
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	if err := ffmpeg.Input(inPath).Output(outPath, args).OverWriteOutput().Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read ffmpeg output: %w", err)
	}
	return out, nil
}

// collectImage fans out OCR (chained into the text pipeline), label
// detection, and the manipulation check.
func (c *Collector) collectImage(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, media []byte) error {
	if len(media) == 0 {
		return fmt.Errorf("%w: empty image payload", ErrPrimarySignalFailed)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		text := c.extractText(ctx, deg, media)
		bundle.ExtractedText = text
		c.collectFromText(ctx, bundle, deg, text)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bundle.EventLabels = c.detectLabels(ctx, deg, media)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.detectManipulation(ctx, bundle, deg, media)
	}()

	wg.Wait()
	return nil
}

// collectVideo fans out the transcript chain (audio track -> transcription
// -> claims + grounding), key-frame labeling, and the manipulation check.
// The clip itself is the primary signal, so a missing payload is the only
// fatal case; each derived signal degrades independently.
func (c *Collector) collectVideo(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, content types.ContentVariant) error {
	if len(content.Media) == 0 {
		return fmt.Errorf("%w: empty video payload", ErrPrimarySignalFailed)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		audio, err := c.media.ExtractAudioTrack(content.Media)
		if err != nil {
			log.Printf("Warning: audio track extraction failed: %v", err)
			deg.add("transcription")
			return
		}
		transcript := c.transcribe(ctx, deg, audio, "audio/mpeg")
		bundle.Transcript = transcript
		c.collectFromText(ctx, bundle, deg, transcript)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		frame, err := c.media.ExtractKeyFrame(content.Media)
		if err != nil {
			log.Printf("Warning: key frame extraction failed: %v", err)
			deg.add("event_labels")
			return
		}
		bundle.EventLabels = c.detectLabels(ctx, deg, frame)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.detectManipulation(ctx, bundle, deg, content.Media)
	}()

	wg.Wait()
	return nil
}

// collectAudio treats the transcript as the primary signal: a transcriber
// failure fails the arm, per the worst-case contract. An empty transcript
// from a working transcriber is a valid empty state.
func (c *Collector) collectAudio(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, content types.ContentVariant) error {
	if len(content.Media) == 0 {
		return fmt.Errorf("%w: empty audio payload", ErrPrimarySignalFailed)
	}
	if c.backends.Transcriber == nil {
		return fmt.Errorf("%w: no transcriber configured", ErrPrimarySignalFailed)
	}

	transcript, err := c.backends.Transcriber.Transcribe(ctx, content.Media, content.MimeType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrimarySignalFailed, err)
	}
	bundle.Transcript = transcript

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.collectFromText(ctx, bundle, deg, transcript)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.detectManipulation(ctx, bundle, deg, content.Media)
	}()

	wg.Wait()
	return nil
}

func (c *Collector) extractText(ctx context.Context, deg *degradedSet, image []byte) string {
	if c.backends.OCR == nil {
		deg.add("ocr")
		return ""
	}
	text, err := c.backends.OCR.ExtractText(ctx, image)
	if err != nil {
		log.Printf("Warning: OCR failed: %v", err)
		deg.add("ocr")
		return ""
	}
	return text
}

func (c *Collector) detectLabels(ctx context.Context, deg *degradedSet, image []byte) []string {
	if c.backends.Labeler == nil {
		deg.add("event_labels")
		return nil
	}
	labels, err := c.backends.Labeler.DetectLabels(ctx, image)
	if err != nil {
		log.Printf("Warning: label detection failed: %v", err)
		deg.add("event_labels")
		return nil
	}
	return labels
}

func (c *Collector) transcribe(ctx context.Context, deg *degradedSet, audio []byte, mimeType string) string {
	if c.backends.Transcriber == nil {
		deg.add("transcription")
		return ""
	}
	transcript, err := c.backends.Transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		log.Printf("Warning: transcription failed: %v", err)
		deg.add("transcription")
		return ""
	}
	return transcript
}
