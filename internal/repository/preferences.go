package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"chat-processor/internal/domain"
)

const (
	attrContactID = "contactId"
	attrLanguage  = "languageCode"
	attrUpdatedAt = "updatedAt"
	attrTTL       = "ttl"

	ttlDuration = 30 * 24 * time.Hour // 30-day TTL
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client wraps the DynamoDB table holding per-conversation language
// preferences: one item per contact id, holding a single language code.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new preference store Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// Get returns the stored language code for a contact, or "" when no
// preference exists. An empty contact id is treated as "no preference"
// rather than an error since events are not guaranteed to carry one.
func (c *Client) Get(ctx context.Context, contactID string) (string, error) {
	if strings.TrimSpace(contactID) == "" {
		return "", nil
	}

	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			attrContactID: &types.AttributeValueMemberS{Value: contactID},
		},
	})
	if err != nil {
		return "", fmt.Errorf("repository: Get get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return "", nil
	}

	code, err := strAttr(out.Item, attrLanguage)
	if err != nil {
		return "", fmt.Errorf("repository: Get decode: %w", err)
	}
	return code, nil
}

// Put records the detected language for a contact, overwriting any earlier
// value (last-detected-language wins).
func (c *Client) Put(ctx context.Context, contactID, languageCode string) error {
	if strings.TrimSpace(contactID) == "" {
		return errors.New("repository: Put: contact id is required")
	}
	if strings.TrimSpace(languageCode) == "" {
		return errors.New("repository: Put: language code is required")
	}

	pref := NewLanguagePreference(contactID, languageCode)
	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      preferenceItem(pref),
	})
	if err != nil {
		return fmt.Errorf("repository: Put: %w", err)
	}
	return nil
}

// NewLanguagePreference constructs a LanguagePreference with UpdatedAt and
// TTL set from the current time.
func NewLanguagePreference(contactID, languageCode string) domain.LanguagePreference {
	now := time.Now().UTC()
	return domain.LanguagePreference{
		ContactID:    contactID,
		LanguageCode: languageCode,
		UpdatedAt:    now.Format(time.RFC3339),
		TTL:          now.Add(ttlDuration).Unix(),
	}
}

func preferenceItem(pref domain.LanguagePreference) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrContactID: &types.AttributeValueMemberS{Value: pref.ContactID},
		attrLanguage:  &types.AttributeValueMemberS{Value: pref.LanguageCode},
		attrUpdatedAt: &types.AttributeValueMemberS{Value: pref.UpdatedAt},
		attrTTL:       &types.AttributeValueMemberN{Value: strconv.FormatInt(pref.TTL, 10)},
	}
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
