package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinmichaelchen/repo-lens/internal/services"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "should decode a JSON array verbatim",
			text: "### Project Description\nA shop.\n\n### Services Used\n[\"React\", \"MongoDB\"]",
			want: []string{"React", "MongoDB"},
		},
		{
			name: "should stop the section at the next heading",
			text: "### Services Used\n[\"Redis\"]\n### Notes\n[\"Ignored\"]\n",
			want: []string{"Redis"},
		},
		{
			name: "should skip blank lines after the heading",
			text: "### Services Used\n\n\n  [\"Go\", \"gRPC\"]\n",
			want: []string{"Go", "gRPC"},
		},
		{
			name: "should fall back to quoted strings when the array is not JSON",
			text: "### Services Used\n['Django', 'Celery']\n",
			want: []string{"Django", "Celery"},
		},
		{
			name: "should fall back to quoted strings without brackets",
			text: "### Services Used\nUses \"Stripe\" and 'Twilio'.\n",
			want: []string{"Stripe", "Twilio"},
		},
		{
			name: "should fall back to bullet items",
			text: "### Services Used\n- Flask\n- Redis",
			want: []string{"Flask", "Redis"},
		},
		{
			name: "should accept star bullets and trim them",
			text: "### Services Used\n*   PostgreSQL  \n* Amazon S3\n",
			want: []string{"PostgreSQL", "Amazon S3"},
		},
		{
			name: "should fall back to capitalized words without stop words",
			text: "### Services Used\nThe project uses Kafka with Zookeeper, and Nginx.\n",
			want: []string{"Kafka", "Zookeeper", "Nginx"},
		},
		{
			name: "should fall back to acronyms when no capitalized words remain",
			text: "### Services Used\nuses AWS and GCP, also S3\n",
			want: []string{"AWS", "GCP"},
		},
		{
			name: "should cap guessed names at ten",
			text: "### Services Used\nAlpha, Bravo, Charlie, Delta, Echo, Foxtrot, Golf, Hotel, India, Juliet, Kilo, Lima\n",
			want: []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliet"},
		},
		{
			name: "should keep an empty array as the answer",
			text: "### Services Used\n[]\nNone in This Project\n",
			want: []string{},
		},
		{
			name: "should drop null elements from the array",
			text: "### Services Used\n[\"React\", null]\n",
			want: []string{"React"},
		},
		{
			name: "should keep only the strings of a mixed array",
			text: "### Services Used\n[\"React\", 1]\n",
			want: []string{"React"},
		},
		{
			name: "should return empty when the heading is missing",
			text: "### Project Description\nBuilt with React and Redis.\n",
			want: []string{},
		},
		{
			name: "should return empty when the section has nothing recognizable",
			text: "### Services Used\nnone\n",
			want: []string{},
		},
		{
			name: "should return empty when the section is immediately another heading",
			text: "### Services Used\n### Next\n[\"Nope\"]\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			got := services.Parse(tt.text)

			// then
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	// given
	text := "### Services Used\n- Flask\n- Redis\n"

	// when
	first := services.Parse(text)
	second := services.Parse(text)

	// then
	assert.Equal(t, first, second)
}

func TestLadder_Extract(t *testing.T) {
	t.Parallel()

	type step struct {
		name string
		out  []string
		ok   bool
	}
	build := func(calls *[]string, steps ...step) services.Ladder {
		ladder := make(services.Ladder, 0, len(steps))
		for _, s := range steps {
			ladder = append(ladder, services.ExtractorFunc{Label: s.name, Fn: func(string) ([]string, bool) {
				*calls = append(*calls, s.name)
				return s.out, s.ok
			}})
		}
		return ladder
	}

	t.Run("should try extractors in order until one matches", func(t *testing.T) {
		t.Parallel()

		// given
		var calls []string
		ladder := build(&calls,
			step{name: "first"},
			step{name: "second", out: []string{"ignored"}},
			step{name: "third", out: []string{"hit"}, ok: true},
			step{name: "fourth", out: []string{"unreached"}, ok: true},
		)

		// when
		got, stage := ladder.Extract("anything")

		// then
		assert.Equal(t, []string{"hit"}, got)
		assert.Equal(t, "third", stage)
		assert.Equal(t, []string{"first", "second", "third"}, calls)
	})

	t.Run("should stop on an empty match", func(t *testing.T) {
		t.Parallel()

		// given
		var calls []string
		ladder := build(&calls,
			step{name: "first", ok: true},
			step{name: "second", out: []string{"unreached"}, ok: true},
		)

		// when
		got, stage := ladder.Extract("anything")

		// then
		assert.Equal(t, []string{}, got)
		assert.Equal(t, "first", stage)
		assert.Equal(t, []string{"first"}, calls)
	})

	t.Run("should return nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		got, stage := services.Ladder{}.Extract("anything")

		assert.Nil(t, got)
		assert.Empty(t, stage)
	})
}

func TestParseStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		want      []string
		wantStage string
	}{
		{
			name:      "should report the json stage for an empty array",
			text:      "### Services Used\n[]\nNone in This Project\n",
			want:      []string{},
			wantStage: "json-array",
		},
		{
			name:      "should report the bullet stage",
			text:      "### Services Used\n- Flask\n- Redis\n",
			want:      []string{"Flask", "Redis"},
			wantStage: "bullets",
		},
		{
			name:      "should report no stage without a heading",
			text:      "Built with Flask.",
			want:      []string{},
			wantStage: "",
		},
		{
			name:      "should report no stage when nothing matches",
			text:      "### Services Used\nnone\n",
			want:      []string{},
			wantStage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			got, stage := services.ParseStage(tt.text)

			// then
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStage, stage)
		})
	}
}

func TestDetectKnown(t *testing.T) {
	t.Parallel()

	t.Run("should return matches in declaration order", func(t *testing.T) {
		t.Parallel()

		// when
		got := services.DetectKnown("Built on DOCKER with a redis cache and a python backend.")

		// then
		assert.Equal(t, []string{"Python", "Redis", "Docker"}, got)
	})

	t.Run("should return empty for unrelated text", func(t *testing.T) {
		t.Parallel()

		got := services.DetectKnown("nothing to see here")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
