package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/events"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

func newAuditFixture() (*AuditService, *fakeIncidentRepo, events.Dispatcher) {
	incidents := newFakeIncidentRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuditService(AuditDependencies{
		AuditRepo:    newFakeAuditRepo(),
		IncidentRepo: incidents,
		Dispatcher:   dispatcher,
	})
	return svc, incidents, dispatcher
}

func seedIncident(incidents *fakeIncidentRepo) int64 {
	incident := &domain.Incident{Title: "Sin internet", Description: "x", StatusID: 1, CategoryID: 1, OwnerUserID: 5}
	_ = incidents.Create(context.Background(), incident)
	return incident.ID
}

func validAuditInput(incidentID int64) AuditInput {
	return AuditInput{
		ChangedAt:        time.Now(),
		Description:      "Se pasó a en proceso",
		FromStatusID:     1,
		ToStatusID:       2,
		IncidentID:       incidentID,
		ChangedByAdminID: 1,
	}
}

func TestAuditCreateRequiresAllFields(t *testing.T) {
	svc, incidents, _ := newAuditFixture()
	incidentID := seedIncident(incidents)

	input := validAuditInput(incidentID)
	input.Description = ""

	_, err := svc.Create(context.Background(), adminClaims(1), input)

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "faltan campos obligatorios", domainErr.Message)
}

func TestAuditCreateRejectsUnknownIncident(t *testing.T) {
	svc, _, _ := newAuditFixture()

	_, err := svc.Create(context.Background(), adminClaims(1), validAuditInput(404))

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "incidencia_id no existe", domainErr.Message)
}

func TestAuditCreatePublishesEvent(t *testing.T) {
	svc, incidents, dispatcher := newAuditFixture()
	incidentID := seedIncident(incidents)

	var received []events.Event
	dispatcher.Subscribe(events.EventAuditRecorded, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	entry, err := svc.Create(context.Background(), adminClaims(1), validAuditInput(incidentID))
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)

	require.Len(t, received, 1)
	assert.Equal(t, incidentID, received[0].IncidentID)
	payload, ok := received[0].Payload.(events.AuditRecordedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(2), payload.ToStatusID)
}

func TestAuditUpdateUnknownEntryIsNotFound(t *testing.T) {
	svc, incidents, _ := newAuditFixture()
	incidentID := seedIncident(incidents)

	err := svc.Update(context.Background(), 404, validAuditInput(incidentID))

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "historial no encontrado", domainErr.Message)
}

func TestAuditDeleteRemovesEntry(t *testing.T) {
	svc, incidents, _ := newAuditFixture()
	incidentID := seedIncident(incidents)

	entry, err := svc.Create(context.Background(), adminClaims(1), validAuditInput(incidentID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), entry.ID))

	_, err = svc.Get(context.Background(), entry.ID)
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestAuditListByIncidentFilters(t *testing.T) {
	svc, incidents, _ := newAuditFixture()
	first := seedIncident(incidents)
	second := seedIncident(incidents)

	_, err := svc.Create(context.Background(), adminClaims(1), validAuditInput(first))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), adminClaims(1), validAuditInput(second))
	require.NoError(t, err)

	entries, err := svc.ListByIncident(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first, entries[0].IncidentID)
}
