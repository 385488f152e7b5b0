package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenkit/core"
)

func TestTrackerAggregatesEvents(t *testing.T) {
	tr := NewTracker()

	tr.OnEvent(core.NewXPAdded("alice", core.RoleMember, 50, 50, "join_community"))
	tr.OnEvent(core.NewPointsAdded("alice", core.RoleMember, 100, 100, "join_community"))
	tr.OnEvent(core.NewXPAdded("bob", core.RoleOrganizer, 200, 200, "create_community"))
	tr.OnEvent(core.NewPointsSpent("alice", core.RoleMember, 40, 60, "redeem:mem-1"))
	tr.OnEvent(core.NewLevelUp("bob", core.RoleOrganizer, 1, 2, "Coordinator", 200))
	tr.OnEvent(core.NewRewardUnlocked("alice", core.RoleMember, "mem-1", 40, 60))

	r := tr.Snapshot()
	require.Len(t, r.Days, 1)

	day := r.Days[0]
	assert.Equal(t, 2, day.ActiveUsers)
	assert.Equal(t, int64(250), day.XPAwarded)
	assert.Equal(t, int64(100), day.PointsEarned)
	assert.Equal(t, int64(40), day.PointsSpent)

	assert.Equal(t, int64(1), r.ActionCounts["join_community"])
	assert.Equal(t, int64(1), r.ActionCounts["create_community"])
	assert.Equal(t, int64(1), r.LevelUps)
	assert.Equal(t, int64(1), r.LevelReached[2])
	assert.Equal(t, int64(1), r.Redemptions["mem-1"])
	assert.Equal(t, 1, r.UsersByRole[core.RoleMember])
	assert.Equal(t, 1, r.UsersByRole[core.RoleOrganizer])
}

func TestTrackerDAUCountsDistinctUsers(t *testing.T) {
	tr := NewTracker()

	tr.OnEvent(core.NewXPAdded("alice", core.RoleMember, 10, 10, "attend_event"))
	tr.OnEvent(core.NewXPAdded("alice", core.RoleMember, 10, 20, "attend_event"))
	tr.OnEvent(core.NewXPAdded("bob", core.RoleMember, 10, 10, "attend_event"))

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, 2, tr.DAU(today))
	assert.Equal(t, 0, tr.DAU("1999-01-01"))
}

type stubBus struct {
	handlers map[core.EventType][]func(context.Context, core.Event)
}

func newStubBus() *stubBus {
	return &stubBus{handlers: map[core.EventType][]func(context.Context, core.Event){}}
}

func (b *stubBus) Subscribe(typ core.EventType, h func(context.Context, core.Event)) func() {
	b.handlers[typ] = append(b.handlers[typ], h)
	return func() { delete(b.handlers, typ) }
}

func (b *stubBus) emit(e core.Event) {
	for _, h := range b.handlers[e.Type] {
		h(context.Background(), e)
	}
}

func TestTrackerAttachAndDetach(t *testing.T) {
	tr := NewTracker()
	bus := newStubBus()

	detach := tr.Attach(bus)
	require.Len(t, bus.handlers, 5)

	bus.emit(core.NewXPAdded("alice", core.RoleMember, 25, 25, "create_post"))
	assert.Equal(t, int64(1), tr.Snapshot().ActionCounts["create_post"])

	detach()
	assert.Empty(t, bus.handlers)
}

func TestWriteCSV(t *testing.T) {
	tr := NewTracker()
	tr.OnEvent(core.NewXPAdded("alice", core.RoleMember, 50, 50, "join_community"))
	tr.OnEvent(core.NewPointsAdded("alice", core.RoleMember, 100, 100, "join_community"))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tr.Snapshot()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "day,active_users,xp_awarded,points_earned,points_spent", lines[0])

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today+",1,50,100,0", lines[1])
}

func TestWriteJSONRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.OnEvent(core.NewLevelUp("bob", core.RoleMentor, 2, 3, "Sage", 700))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tr.Snapshot()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, int64(1), decoded.LevelUps)
	assert.Equal(t, int64(1), decoded.LevelReached[3])
}

func TestHTTPExporter(t *testing.T) {
	var gotAuth string
	var gotBody Report

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	tr := NewTracker()
	tr.OnEvent(core.NewXPAdded("alice", core.RoleMember, 50, 50, "join_community"))

	exp := NewHTTPExporter(srv.URL, "secret")
	require.NoError(t, exp.Export(context.Background(), tr.Snapshot()))

	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, gotBody.Days, 1)
	assert.Equal(t, int64(50), gotBody.Days[0].XPAwarded)
}

func TestHTTPExporterServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	exp := NewHTTPExporter(srv.URL, "")
	err := exp.Export(context.Background(), NewTracker().Snapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
