package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/testutil"
)

func TestSurveyService_Start(t *testing.T) {
	repo := new(testutil.MockSurveyRepo)
	store, _ := newTestStore(t)
	svc := NewSurveyService(repo, store)

	var created *domain.SurveySession
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SurveySession")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.SurveySession) }).
		Return(nil)
	repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&domain.SurveySession{Participant: "alice", Responses: map[string]string{}}, nil)

	session, err := svc.Start(context.Background(), "  alice ", 5, 3)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Participant)

	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "alice", created.Participant)
	assert.Equal(t, 5, created.SampleSize)
	assert.Equal(t, 3, created.SampleCount)
	assert.Empty(t, created.Responses)
	repo.AssertCalled(t, "GetByID", mock.Anything, created.ID)
	repo.AssertExpectations(t)
}

func TestSurveyService_Start_MissingParticipant(t *testing.T) {
	repo := new(testutil.MockSurveyRepo)
	store, _ := newTestStore(t)

	_, err := NewSurveyService(repo, store).Start(context.Background(), "   ", 5, 3)
	assert.ErrorIs(t, err, domain.ErrMissingParticipant)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSurveyService_ValidateParticipant(t *testing.T) {
	svc := NewSurveyService(new(testutil.MockSurveyRepo), nil)

	name, err := svc.ValidateParticipant("  alice \t")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := svc.ValidateParticipant(blank)
		assert.ErrorIs(t, err, domain.ErrMissingParticipant)
	}
}

func TestSurveyService_SubmitResponses(t *testing.T) {
	repo := new(testutil.MockSurveyRepo)
	store, _ := newTestStore(t)
	require.NoError(t, store.WriteMetadata([]domain.MetadataEntry{
		{VisualPath: "visual_1.png"},
		{VisualPath: "visual_2.png"},
	}))
	svc := NewSurveyService(repo, store)

	id := uuid.New()
	existing := &domain.SurveySession{ID: id, Participant: "bob", Responses: map[string]string{"visual_1.png": "Red"}}
	updated := &domain.SurveySession{ID: id, Participant: "bob", Responses: map[string]string{"visual_1.png": "Red", "visual_2.png": "Blue"}}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil).Once()
	repo.On("UpdateResponses", mock.Anything, id, map[string]string{"visual_1.png": "Red", "visual_2.png": "Blue"}).Return(nil)
	repo.On("GetByID", mock.Anything, id).Return(updated, nil).Once()

	session, err := svc.SubmitResponses(context.Background(), id, map[string]string{"visual_2.png": "Blue"})
	require.NoError(t, err)
	assert.Equal(t, "Blue", session.Responses["visual_2.png"])
	repo.AssertExpectations(t)
}

func TestSurveyService_SubmitResponses_UnknownVisual(t *testing.T) {
	repo := new(testutil.MockSurveyRepo)
	store, _ := newTestStore(t)
	require.NoError(t, store.WriteMetadata([]domain.MetadataEntry{{VisualPath: "visual_1.png"}}))
	svc := NewSurveyService(repo, store)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.SurveySession{ID: id, Responses: map[string]string{}}, nil)

	_, err := svc.SubmitResponses(context.Background(), id, map[string]string{"visual_9.png": "Red"})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	repo.AssertNotCalled(t, "UpdateResponses", mock.Anything, mock.Anything, mock.Anything)
}

func TestSurveyService_SubmitResponses_NotFound(t *testing.T) {
	repo := new(testutil.MockSurveyRepo)
	store, _ := newTestStore(t)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	_, err := NewSurveyService(repo, store).SubmitResponses(context.Background(), id, map[string]string{"a": "b"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
