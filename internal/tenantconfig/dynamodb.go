package tenantconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nexus/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tenantIDAttribute = "TenantID"

// GetItemAPI is the subset of *dynamodb.Client used by DynamoStore.
type GetItemAPI interface {
	GetItem(
		ctx context.Context,
		params *dynamodb.GetItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
}

type DynamoStore struct {
	client GetItemAPI
	table  string
}

func NewDynamoStore(client GetItemAPI, table string) (*DynamoStore, error) {
	if client == nil {
		return nil, errors.New("DynamoDB client is nil")
	}

	table = strings.TrimSpace(table)
	if table == "" {
		return nil, errors.New("table name is empty")
	}

	return &DynamoStore{client: client, table: table}, nil
}

func (s *DynamoStore) GetTenantConfig(
	ctx context.Context,
	tenantID string,
) (domain.TenantConfig, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			tenantIDAttribute: &types.AttributeValueMemberS{Value: tenantID},
		},
	})
	if err != nil {
		return domain.TenantConfig{}, fmt.Errorf("get item (table = %s): %w", s.table, err)
	}

	if out == nil || len(out.Item) == 0 {
		return domain.TenantConfig{}, domain.ErrTenantConfigNotFound
	}

	var cfg domain.TenantConfig
	if err = attributevalue.UnmarshalMap(out.Item, &cfg); err != nil {
		return domain.TenantConfig{}, fmt.Errorf("unmarshal item (table = %s): %w", s.table, err)
	}

	return cfg, nil
}
