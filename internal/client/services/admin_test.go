package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/common"
)

func TestAdminLogin_SuccessPersistsSession(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	svc := NewAdminService(f, device, "123", "345", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "admin", "secret"))
	assert.True(t, svc.LoggedIn(ctx))

	u := device.AdminUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.Username)
}

func TestAdminLogin_RejectionWithoutFallbackMatch(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	f.loginErr = fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	svc := NewAdminService(f, device, "123", "345", testLogger())
	ctx := context.Background()

	err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, svc.LoggedIn(ctx))
}

func TestAdminLogin_FallbackGrantsAccessWhenRemoteFails(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	f.loginErr = fmt.Errorf("%w: connection refused", common.ErrNetwork)
	svc := NewAdminService(f, device, "123", "345", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "123", "345"))
	assert.True(t, svc.LoggedIn(ctx))
}

func TestAdminLogin_FallbackDisabledWithoutPassword(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	f.loginErr = errors.New("down")
	svc := NewAdminService(f, device, "123", "", testLogger())

	err := svc.Login(context.Background(), "123", "345")
	assert.Error(t, err)
}

func TestAdminLogin_CancellationIsSilentNoOp(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	svc := NewAdminService(f, device, "123", "345", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Login(ctx, "123", "345")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, svc.LoggedIn(context.Background()))
}

func TestAdminLogout_ClearsSession(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	svc := NewAdminService(f, device, "123", "345", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "admin", "secret"))
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.LoggedIn(ctx))
	assert.Nil(t, device.AdminUser(ctx))
}

func TestFetchAll_CanceledWhileResponseInFlight(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	f.ignoreCancel = true
	f.listResult = []models.Profile{{ID: "1"}}
	svc := NewAdminService(f, device, "", "", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list, err := svc.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, list)
}

func TestFetchAll(t *testing.T) {
	device := testDevice(t, 5*time.Minute)
	f := newFakeAPI()
	f.listResult = []models.Profile{{ID: "1"}, {ID: "2"}}
	svc := NewAdminService(f, device, "", "", testLogger())

	list, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func sampleProfiles() []models.Profile {
	return []models.Profile{
		{ID: "1", Name: "Ram Rathod", Profession: "Engineer", Mobile: "9876543210", Gender: models.GenderMale},
		{ID: "2", Name: "Asha Pawar", Profession: "Doctor", Mobile: "9123456780", Gender: models.GenderFemale},
		{ID: "3", Name: "Vijay Chavan", Profession: "farmer", Mobile: "9000000001", Gender: models.GenderMale},
	}
}

func TestFilterProfiles(t *testing.T) {
	list := sampleProfiles()

	tests := []struct {
		name    string
		query   string
		gender  string
		wantIDs []string
	}{
		{name: "no filters", query: "", gender: "all", wantIDs: []string{"1", "2", "3"}},
		{name: "name substring case-insensitive", query: "rAm", gender: "all", wantIDs: []string{"1"}},
		{name: "profession", query: "FARM", gender: "all", wantIDs: []string{"3"}},
		{name: "mobile digits", query: "912345", gender: "all", wantIDs: []string{"2"}},
		{name: "gender only", query: "", gender: "male", wantIDs: []string{"1", "3"}},
		{name: "combined AND", query: "a", gender: "female", wantIDs: []string{"2"}},
		{name: "no match", query: "zzz", gender: "all", wantIDs: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterProfiles(list, tc.query, tc.gender)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestPaginate(t *testing.T) {
	list := make([]models.Profile, 25)
	for i := range list {
		list[i] = models.Profile{ID: fmt.Sprint(i + 1)}
	}

	items, total := Paginate(list, 1)
	assert.Equal(t, 3, total)
	require.Len(t, items, PageSize)
	assert.Equal(t, "1", items[0].ID)

	items, _ = Paginate(list, 3)
	require.Len(t, items, 5)
	assert.Equal(t, "21", items[0].ID)

	// out-of-range pages clamp
	items, _ = Paginate(list, 99)
	assert.Equal(t, "21", items[0].ID)
	items, _ = Paginate(list, -1)
	assert.Equal(t, "1", items[0].ID)
}

func TestPaginate_EmptyListHasOnePage(t *testing.T) {
	items, total := Paginate(nil, 1)
	assert.Nil(t, items)
	assert.Equal(t, 1, total)
}
