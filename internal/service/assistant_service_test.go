package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesk-labs/incident-service/internal/classifier"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/faq"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

func newAssistantFixture(t *testing.T) *AssistantService {
	t.Helper()
	refs := NewReferenceService(
		newFakeCategoryRepo(
			domain.Category{ID: 1, Name: "Redes"},
			domain.Category{ID: 2, Name: "Hardware"},
		),
		newFakeStatusRepo(domain.Status{ID: 1, Name: "Abierta"}),
		nil, time.Minute, zap.NewNop(),
	)

	path := filepath.Join(t.TempDir(), "faqs.json")
	seed := `[{"id": 1, "keywords": ["horario"], "respuesta": "De 8 a 18."}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))
	store, err := faq.Load(path, zap.NewNop())
	require.NoError(t, err)

	return NewAssistantService(refs, classifier.New(nil), store)
}

func TestSuggestCategoryRequiresText(t *testing.T) {
	svc := newAssistantFixture(t)

	_, err := svc.SuggestCategory(context.Background(), "  ", "")

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "falta titulo o descripcion", domainErr.Message)
}

func TestSuggestCategoryUsesLiveCategories(t *testing.T) {
	svc := newAssistantFixture(t)

	got, err := svc.SuggestCategory(context.Background(), "se dañó el teclado", "el monitor tampoco enciende")

	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Hardware", *got.Category)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, int64(2), *got.CategoryID)
}

func TestChatAnswersFromFAQs(t *testing.T) {
	svc := newAssistantFixture(t)

	answer, err := svc.Chat("¿cuál es el horario de atención?")
	require.NoError(t, err)
	assert.Equal(t, "De 8 a 18.", answer)
}

func TestChatFallsBackWhenNoKeywordMatches(t *testing.T) {
	svc := newAssistantFixture(t)

	answer, err := svc.Chat("algo sin relación")
	require.NoError(t, err)
	assert.Equal(t, "No entendí tu consulta. ¿Podrías reformularla?", answer)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := newAssistantFixture(t)

	_, err := svc.Chat("   ")

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "no enviaste mensaje", domainErr.Message)
}

func TestFAQCRUDValidation(t *testing.T) {
	svc := newAssistantFixture(t)

	_, err := svc.CreateFAQ(nil, "respuesta")
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.UpdateFAQ(99, []string{"x"}, "y")
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.DeleteFAQ(99)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)

	created, err := svc.CreateFAQ([]string{"clave"}, "respuesta nueva")
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	assert.Len(t, svc.ListFAQs(), 2)
}
