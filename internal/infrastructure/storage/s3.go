package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitryhil/vineweb/config"
)

const s3KeyPrefix = "products/"

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func CreateS3Store(ctx context.Context, cfg config.UploadConfig) (*S3Store, error) {
	cfgOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		cfgOpts = append(cfgOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, field string, fh *multipart.FileHeader) (StoredImage, error) {
	src, err := fh.Open()
	if err != nil {
		return StoredImage{}, err
	}
	defer src.Close()

	filename := NewFilename(field, fh.Filename, s.now())
	key := s3KeyPrefix + filename

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(fh.Header.Get("Content-Type")),
		ContentLength: aws.Int64(fh.Size),
	})
	if err != nil {
		return StoredImage{}, fmt.Errorf("uploading %s: %w", key, err)
	}

	return StoredImage{
		Filename: filename,
		Path:     s.publicURL + "/" + key,
		Size:     fh.Size,
		ModTime:  s.now(),
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	key, ok := strings.CutPrefix(path, s.publicURL+"/")
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) List(ctx context.Context) ([]StoredImage, error) {
	var images []StoredImage

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s3KeyPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			images = append(images, StoredImage{
				Filename: strings.TrimPrefix(key, s3KeyPrefix),
				Path:     s.publicURL + "/" + key,
				Size:     aws.ToInt64(obj.Size),
				ModTime:  aws.ToTime(obj.LastModified),
			})
		}
	}

	return images, nil
}
