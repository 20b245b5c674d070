package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsafe/models"
)

type fakeNotificationRepo struct {
	rows      []models.Notification
	insertErr error
}

func (f *fakeNotificationRepo) Insert(n *models.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, *n)
	return nil
}
func (f *fakeNotificationRepo) InsertMany(ns []models.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, ns...)
	return nil
}
func (f *fakeNotificationRepo) ListByEmail(email string, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.rows {
		if n.Email == email {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f *fakeNotificationRepo) MarkRead(id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].IsRead = true
			return nil
		}
	}
	return errors.New("not found")
}

type fakeUserRepo struct {
	admins []models.User
}

func (f *fakeUserRepo) Create(u *models.User) error                 { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error)     { return nil, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) ListAdmins() ([]models.User, error)          { return f.admins, nil }

func TestNotifyRecordsRow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, &fakeUserRepo{})

	svc.Notify("ann@example.com", "label approved", models.NotifLabelApproved, map[string]string{"labelId": "l1"})

	require.Len(t, repo.rows, 1)
	n := repo.rows[0]
	assert.Equal(t, "ann@example.com", n.Email)
	assert.Equal(t, models.NotifLabelApproved, n.Type)
	assert.Equal(t, "l1", n.Metadata["labelId"])
	assert.False(t, n.IsRead)
	assert.NotEmpty(t, n.ID)
}

func TestNotifySwallowsErrors(t *testing.T) {
	repo := &fakeNotificationRepo{insertErr: errors.New("db down")}
	svc := NewService(repo, &fakeUserRepo{})

	// must not panic or surface the error to the producer
	svc.Notify("ann@example.com", "msg", models.NotifInfo, nil)
	assert.Empty(t, repo.rows)
}

func TestNotifyAdminsFansOut(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{admins: []models.User{
		{Email: "admin1@example.com", Role: models.RoleAdmin},
		{Email: "admin2@example.com", Role: models.RoleAdmin},
	}}
	svc := NewService(repo, users)

	svc.NotifyAdmins("new label pending review", models.NotifLabelSubmitted, nil)

	require.Len(t, repo.rows, 2)
	assert.Equal(t, "admin1@example.com", repo.rows[0].Email)
	assert.Equal(t, "admin2@example.com", repo.rows[1].Email)
}

func TestInboxForSplitsByReadState(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, &fakeUserRepo{})

	svc.Notify("ann@example.com", "first", models.NotifInfo, nil)
	svc.Notify("ann@example.com", "second", models.NotifInfo, nil)
	require.NoError(t, svc.MarkRead(repo.rows[0].ID))

	inbox, err := svc.InboxFor("ann@example.com")
	require.NoError(t, err)
	require.Len(t, inbox.Read, 1)
	require.Len(t, inbox.Unread, 1)
	assert.Equal(t, "first", inbox.Read[0].Message)
	assert.Equal(t, "second", inbox.Unread[0].Message)
}
