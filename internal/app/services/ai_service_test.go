package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/scraper"
)

type fakePages struct {
	page *scraper.Page
	err  error
	urls []string
}

func (f *fakePages) Fetch(_ context.Context, rawURL string) (*scraper.Page, error) {
	f.urls = append(f.urls, rawURL)
	return f.page, f.err
}

func TestDraftOrganizationRequiresNameAndIndustry(t *testing.T) {
	for _, answer := range []string{
		`{"description": "柑橘農家です"}`,
		`{"name": "みかん農園", "description": "柑橘農家です"}`,
		`not json`,
		"",
	} {
		svc := NewAIService(&fakeCompleter{text: answer}, &fakePages{}, nil, nil, testLogger)
		_, err := svc.DraftOrganization(context.Background(), &dto.OrganizationDraftRequest{Text: "松山市の柑橘農家"})
		assert.ErrorIs(t, err, apperrors.ErrAIParse, answer)
	}
}

func TestDraftOrganizationFromURL(t *testing.T) {
	pages := &fakePages{page: &scraper.Page{URL: "https://example.jp", Title: "みかん農園", Body: "愛媛のみかん"}}
	completer := &fakeCompleter{text: "```json\n{\"name\":\"みかん農園\",\"industry\":\"農業\"}\n```"}
	svc := NewAIService(completer, pages, nil, nil, testLogger)

	draft, err := svc.DraftOrganization(context.Background(), &dto.OrganizationDraftRequest{URL: "https://example.jp"})
	require.NoError(t, err)
	assert.Equal(t, "みかん農園", draft.Name)
	assert.Equal(t, "農業", draft.Industry)
	assert.Equal(t, "https://example.jp", draft.Website)
	assert.Equal(t, []string{"https://example.jp"}, pages.urls)
	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "愛媛のみかん")
}

func TestDraftOrganizationNeedsInput(t *testing.T) {
	svc := NewAIService(&fakeCompleter{}, &fakePages{}, nil, nil, testLogger)
	_, err := svc.DraftOrganization(context.Background(), &dto.OrganizationDraftRequest{Text: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDraftJobRequiresDescription(t *testing.T) {
	svc := NewAIService(&fakeCompleter{text: `{"title": "収穫スタッフ"}`}, &fakePages{}, nil, nil, testLogger)
	_, err := svc.DraftJob(context.Background(), &dto.JobDraftRequest{Title: "収穫スタッフ"})
	assert.ErrorIs(t, err, apperrors.ErrAIParse)

	svc = NewAIService(&fakeCompleter{text: `{"description": "みかんの収穫", "rjpPositive": ["景色が良い", " "]}`}, &fakePages{}, nil, nil, testLogger)
	draft, err := svc.DraftJob(context.Background(), &dto.JobDraftRequest{Title: "収穫スタッフ", Type: "quest"})
	require.NoError(t, err)
	assert.Equal(t, "収穫スタッフ", draft.Title)
	assert.Equal(t, []string{"景色が良い"}, draft.RJPPositive)
	assert.Equal(t, []string{}, draft.RJPNegative)
}

func TestDraftPropagatesProviderErrors(t *testing.T) {
	svc := NewAIService(&fakeCompleter{err: apperrors.ErrAIRateLimited}, &fakePages{}, nil, nil, testLogger)
	_, err := svc.DraftJob(context.Background(), &dto.JobDraftRequest{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrAIRateLimited)
}
