package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/rs/zerolog/log"
)

type speechTranscriber struct {
	client       *speech.Client
	languageCode string
}

// NewSpeechTranscriber uses Google Cloud Speech-to-Text with application
// default credentials.
func NewSpeechTranscriber(ctx context.Context, languageCode string) (Transcriber, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	if languageCode == "" {
		languageCode = "en-US"
	}
	log.Info().Str("language", languageCode).Msg("Cloud Speech transcriber ready")
	return &speechTranscriber{client: c, languageCode: languageCode}, nil
}

func (t *speechTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               t.languageCode,
			Encoding:                   sniffSpeechEncoding(audio),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	parts := make([]string, 0, len(resp.GetResults()))
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("speech recognize returned no transcript")
	}
	return strings.Join(parts, " "), nil
}

func (t *speechTranscriber) Close() error {
	return t.client.Close()
}

// WAV and FLAC carry their own headers, which the API reads when the
// encoding is left unspecified.
func sniffSpeechEncoding(audio []byte) speechpb.RecognitionConfig_AudioEncoding {
	switch {
	case bytes.HasPrefix(audio, []byte("OggS")):
		return speechpb.RecognitionConfig_OGG_OPUS
	case bytes.HasPrefix(audio, []byte("ID3")):
		return speechpb.RecognitionConfig_MP3
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
