package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hongphuc2004/Music-Flow/platform/config"
)

// Kind selects the target bucket for a media asset.
type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// UploadResult is what the media relay hands back: a durable URL, the object
// key usable for deletion later, and the probed duration for audio assets.
type UploadResult struct {
	URL      string
	PublicID string
	Duration float64
}

type Client struct {
	mc        *minio.Client
	publicURL string
	buckets   map[Kind]string
}

func Connect(cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	client := &Client{
		mc:        mc,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
		buckets: map[Kind]string{
			KindAudio: cfg.AudioBucket,
			KindImage: cfg.ImageBucket,
		},
	}

	client.ensureBuckets()
	log.Println("Connected to MinIO storage")
	return client, nil
}

func (c *Client) ensureBuckets() {
	ctx := context.Background()
	for _, bucket := range c.buckets {
		exists, err := c.mc.BucketExists(ctx, bucket)
		if err != nil {
			log.Printf("Error checking bucket %s: %v", bucket, err)
			continue
		}
		if !exists {
			if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				log.Printf("Error creating bucket %s: %v", bucket, err)
				continue
			}
			log.Printf("Created bucket: %s", bucket)
		}
	}
}

// UploadFile relays a local file into the bucket for kind, under the given
// folder. The caller remains responsible for removing the local file.
func (c *Client) UploadFile(ctx context.Context, kind Kind, folder, localPath string) (*UploadResult, error) {
	bucket, ok := c.buckets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(localPath))

	_, err = c.mc.PutObject(ctx, bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentTypeFor(kind, localPath),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading to %s: %w", bucket, err)
	}

	result := &UploadResult{
		URL:      fmt.Sprintf("%s/%s/%s", c.publicURL, bucket, objectName),
		PublicID: objectName,
	}

	if kind == KindAudio {
		duration, err := probeDuration(ctx, localPath)
		if err != nil {
			log.Printf("Error probing audio duration: %v", err)
		} else {
			result.Duration = duration
		}
	}

	return result, nil
}

// RemoveFile deletes a previously uploaded object by its public id.
func (c *Client) RemoveFile(ctx context.Context, kind Kind, publicID string) error {
	bucket, ok := c.buckets[kind]
	if !ok {
		return fmt.Errorf("unknown media kind %q", kind)
	}
	return c.mc.RemoveObject(ctx, bucket, publicID, minio.RemoveObjectOptions{})
}

func contentTypeFor(kind Kind, path string) string {
	if kind == KindImage {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			return "image/png"
		case ".webp":
			return "image/webp"
		default:
			return "image/jpeg"
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return "audio/flac"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}

// probeDuration asks ffprobe for the duration of a local audio file.
func probeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing ffprobe output %q: %w", output, err)
	}

	return duration, nil
}
