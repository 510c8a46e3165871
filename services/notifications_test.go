package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watchparty "github.com/watchparty/watchparty-go"
	"github.com/watchparty/watchparty-go/mock"
)

func TestNotificationsListEnvelope(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, watchparty.EndpointNotifications, mock.Step{
		Status: http.StatusOK,
		Body: `{
			"results": [
				{"id": "n1", "kind": "party_invite", "title": "Movie night", "read": false},
				{"id": "n2", "kind": "system", "title": "Welcome", "read": true}
			],
			"count": 12,
			"next": "/api/notifications/?page=2"
		}`,
	})

	reg := newTestRegistry(t, tr)
	page, err := reg.Notifications.List(context.Background(), ListParams{})
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, "party_invite", page.Results[0].Kind)
	assert.Equal(t, 12, page.Count)
	assert.Equal(t, "/api/notifications/?page=2", page.Next)
}

func TestNotificationsListParams(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, watchparty.EndpointNotifications, mock.Step{
		Status: http.StatusOK,
		Body:   `{"results":[],"count":0}`,
	})

	reg := newTestRegistry(t, tr)
	_, err := reg.Notifications.List(context.Background(), ListParams{Page: 3, PageSize: 25})
	require.NoError(t, err)

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "3", calls[0].Query.Get("page"))
	assert.Equal(t, "25", calls[0].Query.Get("page_size"))
}

func TestBulkDeleteFansOut(t *testing.T) {
	tr := mock.NewTransport()
	ids := []string{"n1", "n2", "n3", "n4"}
	for _, id := range ids {
		tr.Script(http.MethodDelete, watchparty.EndpointNotification(id), mock.Step{
			Status: http.StatusNoContent,
		})
	}

	reg := newTestRegistry(t, tr)
	require.NoError(t, reg.Notifications.BulkDelete(context.Background(), ids))

	for _, id := range ids {
		assert.Equal(t, 1, tr.CallCount(http.MethodDelete, watchparty.EndpointNotification(id)))
	}
}

func TestBulkDeleteSurfacesFirstError(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodDelete, watchparty.EndpointNotification("ok"), mock.Step{
		Status: http.StatusNoContent,
	})
	tr.Script(http.MethodDelete, watchparty.EndpointNotification("broken"), mock.Step{
		Status: http.StatusForbidden,
		Body:   `{"detail":"not yours"}`,
	})

	reg := newTestRegistry(t, tr)
	err := reg.Notifications.BulkDelete(context.Background(), []string{"ok", "broken"})
	require.Error(t, err)

	var apiErr *watchparty.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
