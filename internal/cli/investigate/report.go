package investigate

import (
	"math"

	"dogctl/resource"
)

// aggregateBucket is one group_by bucket from a spans aggregation
// response.
type aggregateBucket struct {
	By       map[string]string
	Computes map[string]float64
}

func aggregateBuckets(response resource.Document) []aggregateBucket {
	data, ok := response["data"].(map[string]any)
	if !ok {
		return nil
	}
	rawBuckets, ok := data["buckets"].([]any)
	if !ok {
		return nil
	}

	buckets := make([]aggregateBucket, 0, len(rawBuckets))
	for _, rawBucket := range rawBuckets {
		bucket, ok := rawBucket.(map[string]any)
		if !ok {
			continue
		}

		parsed := aggregateBucket{By: map[string]string{}, Computes: map[string]float64{}}
		if by, ok := bucket["by"].(map[string]any); ok {
			for key, value := range by {
				if text, ok := value.(string); ok {
					parsed.By[key] = text
				}
			}
		}
		if computes, ok := bucket["computes"].(map[string]any); ok {
			for key, value := range computes {
				if number, ok := asFloat(value); ok {
					parsed.Computes[key] = number
				}
			}
		}
		buckets = append(buckets, parsed)
	}
	return buckets
}

// firstCompute returns the c0 value of the first bucket, or zero when
// the aggregation matched nothing.
func firstCompute(response resource.Document) float64 {
	buckets := aggregateBuckets(response)
	if len(buckets) == 0 {
		return 0
	}
	return buckets[0].Computes["c0"]
}

type endpointStat struct {
	Endpoint string  `json:"endpoint"`
	Value    float64 `json:"value"`
}

func endpointStats(response resource.Document, facet string) []endpointStat {
	buckets := aggregateBuckets(response)
	stats := make([]endpointStat, 0, len(buckets))
	for _, bucket := range buckets {
		endpoint := bucket.By[facet]
		if endpoint == "" {
			endpoint = "N/A"
		}
		stats = append(stats, endpointStat{Endpoint: endpoint, Value: bucket.Computes["c0"]})
	}
	return stats
}

func nanosToMillis(nanos float64) float64 {
	return roundTwo(nanos / 1e6)
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}

func percentChange(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return math.Round((current-baseline)/baseline*1000) / 10
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	default:
		return 0, false
	}
}
