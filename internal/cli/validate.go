package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/internal/validator"
)

// Validate loads the document at path and prints every issue found.
// It fails when at least one issue would abort evaluation.
func Validate(ctx context.Context, path string, out io.Writer) error {
	root, err := cyoa.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	issues := validator.ValidateDocument(root)
	for _, issue := range issues {
		fmt.Fprintln(out, issue.Error())
	}

	if err := validator.Err(issues); err != nil {
		var agg *validator.AggregateError
		if errors.As(err, &agg) {
			return fmt.Errorf("validation failed: %d errors, %d warnings", len(agg.Issues), len(issues)-len(agg.Issues))
		}
		return err
	}
	fmt.Fprintf(out, "%s is valid (%d warnings)\n", path, len(issues))
	return nil
}
