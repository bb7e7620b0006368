package docstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/microlend/microloan/internal/config"
)

// S3Store сохраняет документы в S3-совместимом хранилище
// (AWS S3 или MinIO при указанном base URL).
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store создаёт клиент S3. Учётные данные берутся из стандартной
// цепочки AWS SDK (переменные окружения, профиль, IAM-роль).
func NewS3Store(ctx context.Context, cfg config.Documents) (*S3Store, error) {
	const op = "docstore.NewS3Store"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseURL != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseURL)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
	}, nil
}

// Save загружает содержимое файла в бакет под указанным ключом.
func (s *S3Store) Save(ctx context.Context, key string, r io.Reader) error {
	const op = "docstore.S3Store.Save"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
