// Package measurements reads sensor measurement records from the DynamoDB
// table the beach devices write into. Attribute values arrive as strings
// (the devices serialize every reading, units included), so parsing and
// unit stripping happen here and the rest of the bot works with typed
// records.
package measurements

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Record is a single measurement row as produced by a beach sensor.
type Record struct {
	Beach        string
	PH           float64
	Hydrocarbons float64
	// ObservedAt keeps the raw day-time string the device wrote,
	// e.g. "9/1/2026, 10:04:11 AM".
	ObservedAt string
}

// dynamodbAPI is the minimal DynamoDB interface required by Store.
// Defined here for testability.
type dynamodbAPI interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store wraps the measurement table.
type Store struct {
	api       dynamodbAPI
	tableName string
}

// New creates a measurement Store over the given table.
func New(api dynamodbAPI, tableName string) (*Store, error) {
	if api == nil {
		return nil, errors.New("measurements: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("measurements: table name must not be empty")
	}
	return &Store{api: api, tableName: tableName}, nil
}

// FetchAll scans the whole measurement table and returns every record in
// table order. Pagination is followed until the scan is exhausted.
func (s *Store) FetchAll(ctx context.Context) ([]Record, error) {
	var records []Record
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("measurements: scan %s: %w", s.tableName, err)
		}

		for _, item := range out.Items {
			rec, err := itemToRecord(item)
			if err != nil {
				return nil, fmt.Errorf("measurements: decode record: %w", err)
			}
			records = append(records, rec)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return records, nil
}

// DistinctBeaches returns the beach names appearing in records, deduplicated
// in first-seen order.
func DistinctBeaches(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	var beaches []string
	for _, r := range records {
		if _, ok := seen[r.Beach]; ok {
			continue
		}
		seen[r.Beach] = struct{}{}
		beaches = append(beaches, r.Beach)
	}
	return beaches
}

// itemToRecord converts a DynamoDB attribute map to a Record.
func itemToRecord(item map[string]types.AttributeValue) (Record, error) {
	beach, err := strAttr(item, "beach")
	if err != nil {
		return Record{}, err
	}
	ph, err := readingAttr(item, "ph")
	if err != nil {
		return Record{}, err
	}
	hydrocarbons, err := readingAttr(item, "hydrocarbons")
	if err != nil {
		return Record{}, err
	}
	observedAt, _ := strAttr(item, "dayTime") // allow empty

	return Record{
		Beach:        beach,
		PH:           ph,
		Hydrocarbons: hydrocarbons,
		ObservedAt:   observedAt,
	}, nil
}

// readingAttr parses a numeric reading stored as a string attribute,
// tolerating a trailing unit suffix such as "4 µg/L" or "0µg/L".
func readingAttr(item map[string]types.AttributeValue, key string) (float64, error) {
	raw, err := strAttr(item, key)
	if err != nil {
		return 0, err
	}
	value := numericPrefix(strings.TrimSpace(raw))
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("measurements: parse attribute %q from %q: %w", key, raw, err)
	}
	return parsed, nil
}

// numericPrefix returns the leading number of s, stopping at the first
// character that cannot be part of one.
func numericPrefix(s string) string {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || (i == 0 && (c == '-' || c == '+')) {
			i++
			continue
		}
		break
	}
	return s[:i]
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("measurements: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("measurements: attribute %q is not a string", key)
	}
	return s.Value, nil
}
