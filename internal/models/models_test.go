package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/repo-lens/internal/models"
)

func TestRepositoryRef(t *testing.T) {
	t.Parallel()

	t.Run("Validate", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			ref     models.RepositoryRef
			wantErr bool
		}{
			{name: "should accept owner and name", ref: models.RepositoryRef{Owner: "octo", Name: "hello"}},
			{name: "should reject missing owner", ref: models.RepositoryRef{Name: "hello"}, wantErr: true},
			{name: "should reject missing name", ref: models.RepositoryRef{Owner: "octo"}, wantErr: true},
			{name: "should reject blank owner", ref: models.RepositoryRef{Owner: "  ", Name: "hello"}, wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// when
				err := tt.ref.Validate()

				// then
				if tt.wantErr {
					assert.ErrorIs(t, err, models.ErrMissingInput)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("ParseRef", func(t *testing.T) {
		t.Parallel()

		ref, err := models.ParseRef("octo/hello")
		require.NoError(t, err)
		assert.Equal(t, "octo/hello", ref.FullName())

		_, err = models.ParseRef("octo")
		assert.Error(t, err)

		_, err = models.ParseRef("octo/hello/extra")
		assert.Error(t, err)

		_, err = models.ParseRef("/hello")
		assert.ErrorIs(t, err, models.ErrMissingInput)
	})
}

func TestFileRecordBlock(t *testing.T) {
	t.Parallel()

	f := models.FileRecord{Path: "src/index.py", Content: "print(1)\n"}

	assert.Equal(t, "# File: src/index.py\nprint(1)\n", f.Block())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("should keep the more severe status", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, models.StatusDegraded, models.StatusOK.Worst(models.StatusDegraded))
		assert.Equal(t, models.StatusDegraded, models.StatusDegraded.Worst(models.StatusOK))
		assert.Equal(t, models.StatusFailed, models.StatusDegraded.Worst(models.StatusFailed))
	})

	t.Run("should marshal as text", func(t *testing.T) {
		t.Parallel()

		// given
		res := models.AnalysisResult{Services: []string{}, Status: models.StatusDegraded}

		// when
		data, err := json.Marshal(res)

		// then
		require.NoError(t, err)
		assert.Contains(t, string(data), `"status":"degraded"`)
	})
}
