// Package services holds supporting infrastructure the core consumes through
// small interfaces.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/projectchronos/chronos/chronos/database/models"
)

// SpacesService serves card art from an S3-compatible Spaces bucket. Art is
// keyed by element and card name so templates can reference images without
// absolute URLs.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, cardRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(cfg)

	return &SpacesService{
		client:   client,
		bucket:   bucket,
		region:   region,
		CardRoot: strings.TrimPrefix(cardRoot, "/"),
	}
}

// CardImageURL builds the public URL for a card's art. Cards whose image
// reference is already absolute keep it.
func (s *SpacesService) CardImageURL(card models.CardInstance) string {
	if strings.HasPrefix(card.Image, "http://") || strings.HasPrefix(card.Image, "https://") {
		return card.Image
	}
	key := s.cardKey(card.Element, card.Name)
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// UploadCardImage stores card art under the element/name key.
func (s *SpacesService) UploadCardImage(ctx context.Context, element models.Element, cardName string, data []byte) error {
	key := s.cardKey(element, cardName)
	contentType := "image/png"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         "public-read",
	})
	if err != nil {
		return fmt.Errorf("failed to upload card image %s: %w", key, err)
	}
	return nil
}

// DeleteCardImage removes a card's art.
func (s *SpacesService) DeleteCardImage(ctx context.Context, element models.Element, cardName string) error {
	key := s.cardKey(element, cardName)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete card image %s: %w", key, err)
	}
	return nil
}

func (s *SpacesService) cardKey(element models.Element, cardName string) string {
	name := strings.ToLower(strings.ReplaceAll(cardName, " ", "-"))
	if s.CardRoot == "" {
		return fmt.Sprintf("%s/%s.png", element, name)
	}
	return fmt.Sprintf("%s/%s/%s.png", s.CardRoot, element, name)
}
