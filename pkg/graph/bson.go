package graph

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// MarshalLayoutBSON serializes a Layout to BSON. The pipeline stores cached
// layouts in this compact form regardless of the cache backend.
func MarshalLayoutBSON(l Layout) ([]byte, error) {
	data, err := bson.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal layout bson: %w", err)
	}
	return data, nil
}

// UnmarshalLayoutBSON deserializes BSON bytes into a Layout and validates it.
func UnmarshalLayoutBSON(data []byte) (Layout, error) {
	var l Layout
	if err := bson.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout bson: %w", err)
	}
	if err := ValidateLayout(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}
