// Package google synthesizes announcements with the Google Cloud
// Text-to-Speech API. The MP3 output is written to a spool directory that a
// local playback daemon drains.
package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gtts "google.golang.org/api/texttospeech/v1"

	"soundpay/internal/announce"
	"soundpay/internal/core"
)

const (
	defaultSpoolDir    = "./data/announcements"
	defaultVoiceGender = "FEMALE"

	// Matches the speech settings the announcement service has always used.
	speakingRate = 0.9
	pitch        = 1.0
)

type Synthesizer struct {
	svc         *gtts.Service
	spoolDir    string
	voiceGender string
}

var _ announce.Announcer = (*Synthesizer)(nil)

// NewFromEnv creates a synthesizer using environment variables.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: AUDIO_SPOOL_DIR (default "./data/announcements"),
// ANNOUNCE_VOICE_GENDER (default "FEMALE").
func NewFromEnv(ctx context.Context) (*Synthesizer, error) {
	credentialsJSON, err := loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gtts.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gtts.CloudPlatformScope))
	if err != nil {
		return nil, fmt.Errorf("create texttospeech service: %w", err)
	}

	spoolDir := strings.TrimSpace(os.Getenv("AUDIO_SPOOL_DIR"))
	if spoolDir == "" {
		spoolDir = defaultSpoolDir
	}
	if err := os.MkdirAll(spoolDir, 0755); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}

	gender := strings.ToUpper(strings.TrimSpace(os.Getenv("ANNOUNCE_VOICE_GENDER")))
	if gender == "" {
		gender = defaultVoiceGender
	}

	slog.InfoContext(ctx, "Text-to-Speech synthesizer initialized",
		"spool_dir", spoolDir,
		"voice_gender", gender)

	return &Synthesizer{
		svc:         svc,
		spoolDir:    spoolDir,
		voiceGender: gender,
	}, nil
}

func loadCredentials(ctx context.Context) ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		credentialsJSON, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return credentialsJSON, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Announce synthesizes the announcement and writes the MP3 into the spool
// directory.
func (s *Synthesizer) Announce(ctx context.Context, amount, sender string, lang core.Language) error {
	req := &gtts.SynthesizeSpeechRequest{
		Input: &gtts.SynthesisInput{
			Text: announce.Message(amount, sender, lang),
		},
		Voice: &gtts.VoiceSelectionParams{
			LanguageCode: languageCode(lang),
			SsmlGender:   s.voiceGender,
		},
		AudioConfig: &gtts.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  speakingRate,
			Pitch:         pitch,
		},
	}

	resp, err := s.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("synthesize speech: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return fmt.Errorf("decode audio content: %w", err)
	}

	path := filepath.Join(s.spoolDir, fmt.Sprintf("payment_%d.mp3", time.Now().UnixMilli()))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	slog.InfoContext(ctx, "Announcement synthesized",
		"path", path,
		"language", string(lang),
		"bytes", len(audio))

	return nil
}

func languageCode(lang core.Language) string {
	if lang == core.Hindi {
		return "hi-IN"
	}
	return "en-US"
}
