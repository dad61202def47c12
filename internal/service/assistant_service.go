package service

import (
	"context"
	"strings"

	"github.com/helpdesk-labs/incident-service/internal/classifier"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/faq"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

const chatFallback = "No entendí tu consulta. ¿Podrías reformularla?"

// AssistantService exposes the heuristic helpers: the keyword-scoring
// category suggester and the FAQ lookup chat.
type AssistantService struct {
	refs *ReferenceService
	clf  *classifier.Classifier
	faqs *faq.Store
}

// NewAssistantService constructs the service.
func NewAssistantService(refs *ReferenceService, clf *classifier.Classifier, faqs *faq.Store) *AssistantService {
	return &AssistantService{refs: refs, clf: clf, faqs: faqs}
}

// SuggestCategory classifies free text against the live category list.
func (s *AssistantService) SuggestCategory(ctx context.Context, title, description string) (classifier.Suggestion, error) {
	if strings.TrimSpace(strings.ToLower(title+" "+description)) == "" {
		return classifier.Suggestion{}, apperrors.NewBadRequest("falta titulo o descripcion", nil)
	}
	categories, err := s.refs.ListCategories(ctx)
	if err != nil {
		return classifier.Suggestion{}, err
	}
	return s.clf.Suggest(title, description, categories), nil
}

// Chat answers a message from the FAQ store, falling back to a canned
// reply when no keyword matches.
func (s *AssistantService) Chat(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperrors.NewBadRequest("no enviaste mensaje", nil)
	}
	if answer, ok := s.faqs.Lookup(message); ok {
		return answer, nil
	}
	return chatFallback, nil
}

// ListFAQs returns every stored FAQ.
func (s *AssistantService) ListFAQs() []domain.FAQ {
	return s.faqs.All()
}

// CreateFAQ validates and stores a new FAQ.
func (s *AssistantService) CreateFAQ(keywords []string, answer string) (domain.FAQ, error) {
	if len(keywords) == 0 || strings.TrimSpace(answer) == "" {
		return domain.FAQ{}, apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}
	item, err := s.faqs.Create(keywords, answer)
	if err != nil {
		return domain.FAQ{}, apperrors.NewInternalError(err)
	}
	return item, nil
}

// UpdateFAQ replaces a FAQ by id.
func (s *AssistantService) UpdateFAQ(id int64, keywords []string, answer string) (domain.FAQ, error) {
	if len(keywords) == 0 || strings.TrimSpace(answer) == "" {
		return domain.FAQ{}, apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}
	item, ok, err := s.faqs.Update(id, keywords, answer)
	if err != nil {
		return domain.FAQ{}, apperrors.NewInternalError(err)
	}
	if !ok {
		return domain.FAQ{}, apperrors.NewNotFound("FAQ", nil)
	}
	return item, nil
}

// DeleteFAQ removes a FAQ by id.
func (s *AssistantService) DeleteFAQ(id int64) (domain.FAQ, error) {
	item, ok, err := s.faqs.Delete(id)
	if err != nil {
		return domain.FAQ{}, apperrors.NewInternalError(err)
	}
	if !ok {
		return domain.FAQ{}, apperrors.NewNotFound("FAQ", nil)
	}
	return item, nil
}
