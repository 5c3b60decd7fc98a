// Package publish turns finished renders into uploaded shorts and
// records the outcome in history.
package publish

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"codereel/config"
)

// Config KV keys for credentials stored alongside lesson history, and
// the on-disk fallback for the OAuth client.
const (
	kvClientID     = "youtube_client_id"
	kvClientSecret = "youtube_client_secret"
	kvRefreshToken = "youtube_refresh_token"

	clientSecretsFile = "client_secret.json"
)

// Metadata is the listing shown on the uploaded short.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

// ConfigReader is the slice of the history store the uploader reads
// credentials from.
type ConfigReader interface {
	GetConfig(ctx context.Context, key string) (string, error)
}

// Uploader wraps the YouTube Data API.
type Uploader struct {
	service *youtube.Service
}

// NewUploader authenticates with whichever credentials are configured:
// an OAuth refresh token for a personal channel first, then a service
// account file for brand accounts.
func NewUploader(ctx context.Context, s config.Settings, kv ConfigReader) (*Uploader, error) {
	if conf, token := oauthConfig(ctx, s, kv); conf != nil {
		client := conf.Client(ctx, token)

		service, err := youtube.NewService(ctx, option.WithHTTPClient(client))
		if err != nil {
			return nil, fmt.Errorf("unable to create YouTube service: %w", err)
		}
		return &Uploader{service: service}, nil
	}

	if s.GoogleServiceAccount != "" {
		data, err := os.ReadFile(s.GoogleServiceAccount)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account file: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", err)
		}

		service, err := youtube.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
		if err != nil {
			return nil, fmt.Errorf("unable to create YouTube service: %w", err)
		}
		return &Uploader{service: service}, nil
	}

	return nil, fmt.Errorf("no YouTube credentials configured")
}

// oauthConfig assembles the refresh-token flow from whichever source
// has the pieces: the store KV wins so tokens rotated at runtime take
// effect without a redeploy, then the environment, then a local
// client_secret.json for the client id and secret. Returns nil when a
// piece is still missing.
func oauthConfig(ctx context.Context, s config.Settings, kv ConfigReader) (*oauth2.Config, *oauth2.Token) {
	clientID := s.GoogleClientID
	clientSecret := s.GoogleClientSecret
	refreshToken := s.GoogleRefreshToken

	if kv != nil {
		if v, err := kv.GetConfig(ctx, kvClientID); err == nil && v != "" {
			clientID = v
		}
		if v, err := kv.GetConfig(ctx, kvClientSecret); err == nil && v != "" {
			clientSecret = v
		}
		if v, err := kv.GetConfig(ctx, kvRefreshToken); err == nil && v != "" {
			refreshToken = v
		}
	}

	if clientID == "" || clientSecret == "" {
		if conf := secretsFileConfig(clientSecretsFile); conf != nil {
			clientID = conf.ClientID
			clientSecret = conf.ClientSecret
		}
	}

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, nil
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}, &oauth2.Token{RefreshToken: refreshToken}
}

// secretsFileConfig loads a downloaded OAuth client file if one sits
// next to the binary.
func secretsFileConfig(path string) *oauth2.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	conf, err := google.ConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		log.Printf("⚠️ Ignoring malformed %s: %v", path, err)
		return nil
	}
	return conf
}

// UploadVideo pushes the file and returns the new video id.
func (u *Uploader) UploadVideo(videoPath string, meta Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("📤 Uploading: %s (%.2f MB)", videoPath, float64(fileInfo.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video)
	call = call.Media(file)

	response, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("✅ Uploaded! https://youtube.com/shorts/%s", response.Id)
	return response.Id, nil
}
