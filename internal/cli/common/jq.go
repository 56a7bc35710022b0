package common

import (
	"context"
	"strings"
	"sync"

	"github.com/itchyny/gojq"
)

var jqCodeCache sync.Map

// ApplyJQ filters value through a jq expression. A single result is
// returned unwrapped, several results come back as a slice.
func ApplyJQ(ctx context.Context, expression string, value any) (any, error) {
	trimmedExpression := strings.TrimSpace(expression)
	if trimmedExpression == "" {
		return value, nil
	}

	code, err := cachedJQCode(trimmedExpression)
	if err != nil {
		return nil, ValidationError("invalid jq expression", err)
	}

	iterator := code.RunWithContext(ctx, value)
	results := make([]any, 0, 1)
	for {
		result, ok := iterator.Next()
		if !ok {
			break
		}
		if resultErr, isErr := result.(error); isErr {
			return nil, ValidationError("failed to evaluate jq expression", resultErr)
		}
		results = append(results, result)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

func cachedJQCode(expression string) (*gojq.Code, error) {
	if cached, ok := jqCodeCache.Load(expression); ok {
		if typed, ok := cached.(*gojq.Code); ok && typed != nil {
			return typed, nil
		}
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}
	jqCodeCache.Store(expression, code)
	return code, nil
}
