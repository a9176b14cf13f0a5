package audit

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNotFound indicates a missing audit record.
var ErrNotFound = errors.New("audit record not found")

const (
	localListLimit = 200
	localPreview   = 400
)

// s3API is the slice of the S3 client the audit trail uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutObjectRetention(ctx context.Context, params *s3.PutObjectRetentionInput, optFns ...func(*s3.Options)) (*s3.PutObjectRetentionOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Service is the append-only audit trail writer: every record goes to a local
// JSONL file and, when a bucket is configured, to S3 with server-side
// encryption and optional object-lock retention.
type Service struct {
	cfg Config
	s3  s3API
	mu  sync.Mutex
}

func NewService(ctx context.Context, cfg Config, awsEndpointURL, awsRegion string) (*Service, error) {
	var client s3API
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS config for audit upload")
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if awsEndpointURL != "" {
				o.BaseEndpoint = aws.String(awsEndpointURL)
				o.UsePathStyle = true
			}
		})
	}

	return NewServiceWithClient(cfg, client), nil
}

func NewServiceWithClient(cfg Config, client s3API) *Service {
	if cfg.S3UploadTimeout <= 0 {
		cfg.S3UploadTimeout = 15 * time.Second
	}

	return &Service{cfg: cfg, s3: client}
}

// Log appends one record. The local append is authoritative for the returned
// error; an S3 upload failure is logged but does not fail the request that
// produced the record.
func (s *Service) Log(ctx context.Context, entry Entry) error {
	entry.TS = time.Now().UTC().Format(time.RFC3339Nano)

	body, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "failed to marshal audit entry")
	}

	if err := s.appendLocal(body); err != nil {
		return err
	}

	if s.cfg.S3Bucket != "" && s.s3 != nil {
		if err := s.upload(ctx, body); err != nil {
			log.Error().Err(err).Msg("Failed to upload audit record to S3")
		}
	}

	return nil
}

func (s *Service) appendLocal(body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.cfg.LocalPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create audit log directory")
		}
	}

	f, err := os.OpenFile(s.cfg.LocalPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open audit log")
	}
	defer f.Close()

	if _, err := f.Write(append(body, '\n')); err != nil {
		return errors.Wrap(err, "failed to append audit log")
	}

	return nil
}

func (s *Service) upload(ctx context.Context, body []byte) error {
	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.S3UploadTimeout)
	defer cancel()

	u := uuid.New()
	key := fmt.Sprintf("%s/%s-%s.jsonl",
		strings.TrimRight(s.cfg.S3Prefix, "/"),
		time.Now().UTC().Format("20060102T150405Z"),
		hex.EncodeToString(u[:]),
	)

	sse := s3types.ServerSideEncryptionAes256
	if strings.EqualFold(s.cfg.S3SSE, "aws:kms") {
		sse = s3types.ServerSideEncryptionAwsKms
	}

	_, err := s.s3.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:               aws.String(s.cfg.S3Bucket),
		Key:                  aws.String(key),
		Body:                 strings.NewReader(string(body)),
		ServerSideEncryption: sse,
	})
	if err != nil {
		return errors.Wrap(err, "s3 put object")
	}

	if s.cfg.S3ObjectLock {
		retainUntil := time.Now().UTC().AddDate(0, 0, s.cfg.S3RetentionDays)
		_, err := s.s3.PutObjectRetention(uploadCtx, &s3.PutObjectRetentionInput{
			Bucket: aws.String(s.cfg.S3Bucket),
			Key:    aws.String(key),
			Retention: &s3types.ObjectLockRetention{
				Mode:            s3types.ObjectLockRetentionModeGovernance,
				RetainUntilDate: aws.Time(retainUntil),
			},
		})
		if err != nil {
			// the object is stored, only the retention lock failed
			log.Error().Err(err).Str("key", key).Msg("Failed to set audit object retention")
		}
	}

	return nil
}

// List returns recent records: the newest S3 objects when a bucket is
// configured, else the tail of the local file, newest first.
func (s *Service) List(ctx context.Context) (string, []ListItem, error) {
	if s.cfg.S3Bucket != "" && s.s3 != nil {
		prefix := strings.TrimRight(s.cfg.S3Prefix, "/") + "/"
		out, err := s.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:  aws.String(s.cfg.S3Bucket),
			Prefix:  aws.String(prefix),
			MaxKeys: aws.Int32(100),
		})
		if err != nil {
			return "", nil, errors.Wrap(err, "s3 list objects")
		}

		items := make([]ListItem, 0, len(out.Contents))
		for _, obj := range out.Contents {
			items = append(items, ListItem{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		return "s3", items, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.cfg.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "local", []ListItem{}, nil
		}
		return "", nil, errors.Wrap(err, "failed to read local audit log")
	}

	lines := splitLines(data)
	if len(lines) > localListLimit {
		lines = lines[len(lines)-localListLimit:]
	}

	items := make([]ListItem, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		preview := lines[i]
		if len(preview) > localPreview {
			preview = preview[:localPreview]
		}
		items = append(items, ListItem{Index: int64(len(items)), Preview: preview})
	}

	return "local", items, nil
}

// Get fetches one raw record: by object key for S3, by line index for the
// local file.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if s.cfg.S3Bucket != "" && s.s3 != nil {
		out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.S3Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return "", errors.Wrap(err, "s3 get object")
		}
		defer out.Body.Close()

		body, err := io.ReadAll(out.Body)
		if err != nil {
			return "", errors.Wrap(err, "s3 read object")
		}
		return string(body), nil
	}

	idx, err := strconv.Atoi(key)
	if err != nil {
		return "", errors.Wrapf(ErrNotFound, "invalid key %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.cfg.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.WithStack(ErrNotFound)
		}
		return "", errors.Wrap(err, "failed to read local audit log")
	}

	lines := splitLines(data)
	if idx < 0 || idx >= len(lines) {
		return "", errors.Wrapf(ErrNotFound, "index %d out of range", idx)
	}

	return lines[idx], nil
}

func splitLines(data []byte) []string {
	raw := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
