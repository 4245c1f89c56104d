package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/voting"
	"github.com/crestline/kitforge/internal/transport"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	projects map[string]*project.Project
}

func (s *stubReader) Get(_ context.Context, id string) (*project.Project, error) {
	proj, ok := s.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return proj, nil
}

func (s *stubReader) List(_ context.Context) ([]project.Summary, error) {
	var out []project.Summary
	for _, p := range s.projects {
		out = append(out, project.Summary{
			ID:     p.ID,
			TeamID: p.TeamID,
			Title:  p.Title,
			Stage:  p.Stage,
		})
	}
	return out, nil
}

func newTestServer(t *testing.T, reader *stubReader) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(transport.Router(reader, catalog.Default(), logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, &stubReader{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestRouter_GetProject(t *testing.T) {
	proj := &project.Project{
		ID:     "p1",
		TeamID: "team1",
		Title:  "Away Kit",
		Stage:  project.StageBrief,
		Brief:  project.DefaultBrief(),
	}
	srv := newTestServer(t, &stubReader{projects: map[string]*project.Project{"p1": proj}})

	resp, err := http.Get(srv.URL + "/api/projects/p1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got project.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "p1", got.ID)
	require.Equal(t, "Away Kit", got.Title)
}

func TestRouter_GetProjectNotFound(t *testing.T) {
	srv := newTestServer(t, &stubReader{})

	resp, err := http.Get(srv.URL + "/api/projects/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_GetTally(t *testing.T) {
	now := time.Now().UTC()
	proj := &project.Project{
		ID:     "p1",
		TeamID: "team1",
		Title:  "Away Kit",
		Stage:  project.StageVoting,
		Concepts: []project.Concept{
			{
				ID:    "c1",
				Title: "Concept 1",
				Votes: []project.Vote{
					{ID: "v1", MemberID: "m1", Choice: project.VoteApprove, CastAt: now},
					{ID: "v2", MemberID: "m2", Choice: project.VoteRevise, CastAt: now},
				},
			},
			{
				ID:    "c2",
				Title: "Concept 2",
				Votes: []project.Vote{
					{ID: "v3", MemberID: "m1", Choice: project.VoteApprove, CastAt: now},
					{ID: "v4", MemberID: "m2", Choice: project.VoteApprove, CastAt: now},
				},
			},
		},
	}
	srv := newTestServer(t, &stubReader{projects: map[string]*project.Project{"p1": proj}})

	resp, err := http.Get(srv.URL + "/api/projects/p1/tally")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tallies []voting.ConceptTally
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tallies))
	require.Len(t, tallies, 2)
	require.Equal(t, "c2", tallies[0].ConceptID)
	require.Equal(t, 2, tallies[0].Approvals)
	require.Equal(t, "c1", tallies[1].ConceptID)
	require.Equal(t, 1, tallies[1].Revisions)
}

func TestRouter_ListProjects(t *testing.T) {
	proj := &project.Project{ID: "p1", TeamID: "team1", Title: "Away Kit", Stage: project.StageBrief}
	srv := newTestServer(t, &stubReader{projects: map[string]*project.Project{"p1": proj}})

	resp, err := http.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []project.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, "p1", summaries[0].ID)
}

func TestRouter_Catalog(t *testing.T) {
	srv := newTestServer(t, &stubReader{})

	resp, err := http.Get(srv.URL + "/api/catalog/quotes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quotes []catalog.VendorQuote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quotes))
	require.Len(t, quotes, 3)
	require.Equal(t, "vendor-stitchworks", quotes[0].ID)
}
