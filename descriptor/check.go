package descriptor

import (
	"context"
	"github.com/lithictech/go-fieldcheck/logctx"
	"github.com/lithictech/go-fieldcheck/parallel"
)

// Result is the verdict for one descriptor.
type Result struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	// Value is the value that was validated.
	// For select fields, this is the resolved value of the selected option.
	Value  *string  `json:"value"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Check builds and validates a single descriptor.
// The error is non-nil only if the descriptor is malformed.
func Check(ctx context.Context, d Descriptor) (Result, error) {
	v, err := d.Build()
	if err != nil {
		return Result{}, err
	}
	valid := v.Validate()
	r := Result{
		Name:   v.Name,
		Kind:   v.Kind.String(),
		Value:  v.Value,
		Valid:  valid,
		Errors: v.Errors(),
	}
	logctx.Logger(ctx).DebugContext(ctx, "field_checked",
		"field_name", r.Name,
		"field_kind", r.Kind,
		"field_valid", r.Valid,
		"field_errors", r.Errors,
	)
	return r, nil
}

// CheckAll checks each descriptor independently, up to parallelism at a time.
// Results are in the same order as descriptors.
// If any descriptor is malformed, the error holds one entry per malformed descriptor,
// and that descriptor's Result is the zero value.
func CheckAll(ctx context.Context, descriptors []Descriptor, parallelism int) ([]Result, error) {
	results := make([]Result, len(descriptors))
	err := parallel.ForEach(ctx, len(descriptors), parallelism, func(ctx context.Context, idx int) error {
		r, err := Check(ctx, descriptors[idx])
		if err != nil {
			return err
		}
		results[idx] = r
		return nil
	})
	return results, err
}

// AllValid is true if every result is valid.
func AllValid(results []Result) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}
