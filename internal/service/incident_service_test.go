package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/events"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

func endUserClaims(id int64) *auth.Claims {
	return &auth.Claims{SubjectID: id, Role: domain.RoleEndUser, Email: "user@example.com"}
}

func adminClaims(id int64) *auth.Claims {
	return &auth.Claims{SubjectID: id, Role: domain.RoleAdmin, Email: "admin@example.com"}
}

func newIncidentFixture() (*IncidentService, *fakeIncidentRepo, events.Dispatcher) {
	incidents := newFakeIncidentRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewIncidentService(IncidentDependencies{
		IncidentRepo: incidents,
		StatusRepo:   newFakeStatusRepo(domain.Status{ID: 1, Name: "Abierta"}),
		CategoryRepo: newFakeCategoryRepo(domain.Category{ID: 1, Name: "Redes"}),
		Dispatcher:   dispatcher,
	})
	return svc, incidents, dispatcher
}

func validInput() IncidentInput {
	return IncidentInput{
		Title:       "Sin internet",
		Description: "El wifi de la oficina no funciona",
		StatusID:    1,
		CategoryID:  1,
	}
}

func TestCreateForcesOwnerForEndUser(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	input := validInput()
	foreign := int64(99)
	input.OwnerUserID = &foreign

	incident, err := svc.Create(context.Background(), endUserClaims(5), input)

	require.NoError(t, err)
	assert.Equal(t, int64(5), incident.OwnerUserID, "client-supplied owner must be ignored")
	assert.Nil(t, incident.AssignedAdminID)
}

func TestCreateByAdminRequiresOwner(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	_, err := svc.Create(context.Background(), adminClaims(2), validInput())

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "usuario_id es obligatorio cuando crea un administrador", domainErr.Message)
}

func TestCreateByAdminDefaultsAssignedAdmin(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	input := validInput()
	owner := int64(5)
	input.OwnerUserID = &owner

	incident, err := svc.Create(context.Background(), adminClaims(2), input)

	require.NoError(t, err)
	assert.Equal(t, int64(5), incident.OwnerUserID)
	require.NotNil(t, incident.AssignedAdminID)
	assert.Equal(t, int64(2), *incident.AssignedAdminID)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	input := validInput()
	input.StatusID = 42

	_, err := svc.Create(context.Background(), endUserClaims(5), input)

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "estado_id no existe", domainErr.Message)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	input := validInput()
	input.Title = "   "

	_, err := svc.Create(context.Background(), endUserClaims(5), input)

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "faltan campos obligatorios", domainErr.Message)
}

func TestCreatePublishesEvent(t *testing.T) {
	svc, _, dispatcher := newIncidentFixture()

	var received []events.Event
	dispatcher.Subscribe(events.EventIncidentCreated, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	incident, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, incident.ID, received[0].IncidentID)
	assert.NotEmpty(t, received[0].ID)
	assert.Equal(t, domain.RoleEndUser, received[0].Actor.Role)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	incident, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), endUserClaims(6), incident.ID)
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 403, domainErr.HTTPStatus)

	got, err := svc.Get(context.Background(), adminClaims(1), incident.ID)
	require.NoError(t, err)
	assert.Equal(t, incident.ID, got.ID)
}

func TestGetUnknownIncidentIsNotFound(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	_, err := svc.Get(context.Background(), adminClaims(1), 404)

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestDeleteBlockedByAuditTrail(t *testing.T) {
	svc, incidents, _ := newIncidentFixture()

	incident, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)
	incidents.referenced[incident.ID] = true

	err = svc.Delete(context.Background(), adminClaims(1), incident.ID)

	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "no se puede eliminar la incidencia porque tiene historial asociado", domainErr.Message)

	_, err = svc.Get(context.Background(), adminClaims(1), incident.ID)
	assert.NoError(t, err, "blocked delete must leave the incident intact")
}

func TestDeleteRemovesUnreferencedIncident(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	incident, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), adminClaims(1), incident.ID))

	_, err = svc.Get(context.Background(), adminClaims(1), incident.ID)
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestListForOwnerScopesToCaller(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	_, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), endUserClaims(6), validInput())
	require.NoError(t, err)

	items, meta, err := svc.ListForOwner(context.Background(), 5, 1, 10)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].OwnerUserID)
	assert.Equal(t, int64(1), meta.Total)
}

func TestPaginationDefaultsAndMeta(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), endUserClaims(5), validInput())
		require.NoError(t, err)
	}

	items, meta, err := svc.ListForAdmin(context.Background(), 0, 0, AdminListFilter{})

	require.NoError(t, err)
	assert.Len(t, items, 10, "limit defaults to 10")
	assert.Equal(t, 1, meta.Page, "page defaults to 1")
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, int64(3), meta.TotalPages)
}

func TestListForAdminLastPartialPage(t *testing.T) {
	svc, _, _ := newIncidentFixture()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), endUserClaims(5), validInput())
		require.NoError(t, err)
	}

	items, meta, err := svc.ListForAdmin(context.Background(), 3, 10, AdminListFilter{})

	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, int64(3), meta.TotalPages)
}

func TestListForAdminAppliesIndependentFilters(t *testing.T) {
	incidents := newFakeIncidentRepo()
	svc := NewIncidentService(IncidentDependencies{
		IncidentRepo: incidents,
		StatusRepo: newFakeStatusRepo(
			domain.Status{ID: 1, Name: "Abierta"},
			domain.Status{ID: 2, Name: "Resuelta"},
		),
		CategoryRepo: newFakeCategoryRepo(
			domain.Category{ID: 1, Name: "Redes"},
			domain.Category{ID: 2, Name: "Hardware"},
		),
	})

	input := validInput()
	_, err := svc.Create(context.Background(), endUserClaims(5), input)
	require.NoError(t, err)

	input.StatusID = 2
	input.CategoryID = 2
	_, err = svc.Create(context.Background(), endUserClaims(5), input)
	require.NoError(t, err)

	statusID := int64(2)
	items, _, err := svc.ListForAdmin(context.Background(), 1, 10, AdminListFilter{StatusID: &statusID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].StatusID)

	categoryID := int64(1)
	items, _, err = svc.ListForAdmin(context.Background(), 1, 10, AdminListFilter{CategoryID: &categoryID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].CategoryID)

	require.NotNil(t, incidents.lastFilter.CategoryID)
	assert.Nil(t, incidents.lastFilter.StatusID, "category filter must not touch the status clause")
}

func TestListForAdminSearchFilter(t *testing.T) {
	svc, incidents, _ := newIncidentFixture()

	_, err := svc.Create(context.Background(), endUserClaims(5), validInput())
	require.NoError(t, err)

	other := validInput()
	other.Title = "Impresora atascada"
	other.Description = "El papel se atora en la bandeja"
	_, err = svc.Create(context.Background(), endUserClaims(5), other)
	require.NoError(t, err)

	q := "WIFI"
	items, meta, err := svc.ListForAdmin(context.Background(), 1, 10, AdminListFilter{SearchTerm: &q})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sin internet", items[0].Title, "search must match case-insensitively on the description")
	assert.Equal(t, int64(1), meta.Total)

	require.NotNil(t, incidents.lastFilter.SearchTerm)
	assert.Equal(t, q, *incidents.lastFilter.SearchTerm)
}
