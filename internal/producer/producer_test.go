package producer

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/drivedesk/notifier/internal/mocks/producer"
	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/repository/notification"
)

var testStrategy = retry.Strategy{Attempts: 1, Delay: time.Millisecond}

func newTestProducer(t *testing.T) (*Producer, *mocks.MocknotificationCreator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	creator := mocks.NewMocknotificationCreator(ctrl)
	p := NewProducer(creator, testStrategy)

	return p, creator
}

func testStudent() Student {
	return Student{
		ID:       "42",
		FullName: "Marie Dupont",
		Email:    "marie@example.com",
		Phone:    "+33612345678",
	}
}

func TestSessionReminder(t *testing.T) {
	p, creator := newTestProducer(t)

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	session := Session{
		ID:             "sess-1",
		StartAt:        now.Add(48 * time.Hour),
		Location:       "Main office",
		InstructorName: "Paul Martin",
	}

	var got []model.Notification
	creator.EXPECT().
		CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) (uuid.UUID, error) {
			got = append(got, n)
			return uuid.New(), nil
		}).
		Times(2)

	created, err := p.SessionReminder(context.Background(), testStudent(), session, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, model.ChannelSMS, got[0].Channel)
	assert.Equal(t, model.ChannelInApp, got[1].Channel)

	for _, n := range got {
		assert.Equal(t, model.CategorySessionReminder, n.Category)
		assert.Equal(t, model.PriorityNormal, n.Priority)
		assert.Equal(t, "student", n.RecipientType)
		assert.Equal(t, "42", n.RecipientID)
		assert.Equal(t, "+33612345678", n.RecipientPhone)
		require.NotNil(t, n.ScheduledAt)
		assert.Equal(t, session.StartAt.Add(-24*time.Hour), *n.ScheduledAt)
		assert.Contains(t, n.Message, "Main office")
		assert.Contains(t, n.Message, "Paul Martin")
	}

	for _, n := range created {
		assert.NotEqual(t, uuid.Nil, n.ID)
		assert.Equal(t, model.StatusPending, n.Status)
	}
}

func TestSessionReminder_LeadWindowAlreadyPast(t *testing.T) {
	p, creator := newTestProducer(t)

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	// Session in 30 minutes with a 24h lead window: the reminder time is in
	// the past, so it goes out immediately.
	session := Session{ID: "sess-2", StartAt: now.Add(30 * time.Minute), Location: "Office"}

	creator.EXPECT().
		CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) (uuid.UUID, error) {
			assert.Nil(t, n.ScheduledAt)
			return uuid.New(), nil
		}).
		Times(1)

	created, err := p.SessionReminder(context.Background(), testStudent(), session, 24*time.Hour, model.ChannelInApp)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestExamConvocation(t *testing.T) {
	p, creator := newTestProducer(t)

	exam := Exam{
		ID:       "exam-1",
		Kind:     "practical",
		At:       time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		Location: "Exam center",
	}

	var got []model.Notification
	creator.EXPECT().
		CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) (uuid.UUID, error) {
			got = append(got, n)
			return uuid.New(), nil
		}).
		Times(2)

	created, err := p.ExamConvocation(context.Background(), testStudent(), exam)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, model.ChannelEmail, got[0].Channel)
	assert.Equal(t, model.ChannelInApp, got[1].Channel)

	for _, n := range got {
		assert.Equal(t, model.CategoryExamConvocation, n.Category)
		assert.Equal(t, model.PriorityUrgent, n.Priority)
		assert.Nil(t, n.ScheduledAt)
		assert.Contains(t, n.Message, "practical")
		assert.Contains(t, n.Message, "Exam center")
	}
}

func TestPaymentReminder(t *testing.T) {
	p, creator := newTestProducer(t)

	student := testStudent()
	student.Balance = 1500

	var got []model.Notification
	creator.EXPECT().
		CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) (uuid.UUID, error) {
			got = append(got, n)
			return uuid.New(), nil
		}).
		Times(2)

	created, err := p.PaymentReminder(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, model.ChannelSMS, got[0].Channel)
	assert.Equal(t, model.ChannelInApp, got[1].Channel)

	for _, n := range got {
		assert.Equal(t, model.CategoryPaymentReminder, n.Category)
		assert.Equal(t, model.PriorityHigh, n.Priority)
		assert.Contains(t, n.Message, "1500.00")
		assert.Contains(t, n.ContextData, "1500")
	}
}

func TestPaymentReminder_NoDebt(t *testing.T) {
	p, _ := newTestProducer(t)

	student := testStudent()
	student.Balance = 0

	created, err := p.PaymentReminder(context.Background(), student)
	assert.NoError(t, err)
	assert.Empty(t, created)

	// A credit balance is not a debt either.
	student.Balance = -200
	created, err = p.PaymentReminder(context.Background(), student)
	assert.NoError(t, err)
	assert.Empty(t, created)
}

func TestMaintenanceAlert(t *testing.T) {
	p, creator := newTestProducer(t)

	vehicle := Vehicle{
		ID:          "veh-1",
		Plate:       "AB-123-CD",
		Model:       "Clio V",
		ServiceNote: "brake pads worn",
	}

	id := uuid.New()
	creator.EXPECT().
		CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) (uuid.UUID, error) {
			assert.Equal(t, model.ChannelInApp, n.Channel)
			assert.Equal(t, model.CategoryMaintenanceAlert, n.Category)
			assert.Equal(t, "admin", n.RecipientType)
			assert.Contains(t, n.Message, "AB-123-CD")
			assert.Contains(t, n.Message, "brake pads worn")
			return id, nil
		})

	created, err := p.MaintenanceAlert(context.Background(), vehicle)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, id, created[0].ID)
	assert.Equal(t, model.StatusPending, created[0].Status)
}

func TestCreateForChannels_SkipsChannelWithoutContact(t *testing.T) {
	p, creator := newTestProducer(t)

	student := testStudent()
	student.Phone = "" // no SMS contact

	gomock.InOrder(
		creator.EXPECT().
			CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
			Return(uuid.Nil, notification.ErrValidation),
		creator.EXPECT().
			CreateNotification(gomock.Any(), testStrategy, gomock.Any()).
			Return(uuid.New(), nil),
	)

	session := Session{ID: "sess-3", StartAt: time.Now().Add(time.Hour), Location: "Office"}

	created, err := p.SessionReminder(context.Background(), student, session, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, model.ChannelInApp, created[0].Channel)
}
