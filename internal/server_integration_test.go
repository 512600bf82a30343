//go:build integration_test || all_tests

package internal

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/config"
	"github.com/eswan18/fitness-api-sub000/internal/db"
	"github.com/eswan18/fitness-api-sub000/internal/runs"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
)

const writesPerMinute = 6

type ServerTestSuite struct {
	suite.Suite

	dockerPool *dockertest.Pool
	server     *Server
	endpoint   string
	client     *http.Client
	teardown   []func()
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.dockerPool, err = dockertest.NewPool("")
	s.Require().NoError(err, "could not create new dockertest pool")
	s.Require().NoError(s.dockerPool.Client.Ping(), "could not ping dockertest pool")

	redisPort := s.runContainer(&dockertest.RunOptions{Repository: "redis", Tag: "6.2"}, "6379/tcp")
	pgPort := s.runContainer(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=fitness",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, "5432/tcp")

	dsn := db.NewDBPoolParams{DBHost: "localhost", DBPort: pgPort, DBName: "fitness"}.ConnString() + "?sslmode=disable"
	s.Require().NoError(s.dockerPool.Retry(func() error {
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer conn.Close()
		return conn.Ping()
	}))

	port := freePort(s.T())
	cfg := &config.Config{
		Host:                  "127.0.0.1",
		Port:                  port,
		PostgresHost:          "localhost",
		PostgresPort:          pgPort,
		PostgresDBName:        "fitness",
		PostgresUser:          "postgres",
		MigrateOnStartup:      true,
		RedisHost:             "localhost",
		RedisPort:             redisPort,
		PrometheusMetricsHost: "127.0.0.1",
		PrometheusMetricsPort: strconv.Itoa(freePort(s.T())),
		RunsCacheSizeMB:       1,
		RunsCacheTTL:          config.Duration{Duration: time.Minute},
		WritesAllowedPerMin:   writesPerMinute,
	}

	s.server, err = NewServer(ctx, NewServerParams{Config: cfg, VersionInfo: "test-version-info"})
	s.Require().NoError(err)
	s.server.Serve(cfg.Host, cfg.Port)

	s.endpoint = fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))
	s.client = &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	s.Require().Eventually(func() bool {
		resp, err := s.do(http.MethodGet, "/health", nil)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)
}

func (s *ServerTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func (s *ServerTestSuite) runContainer(opts *dockertest.RunOptions, port string) string {
	resource, err := s.dockerPool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err, "run %s", opts.Repository)
	s.teardown = append(s.teardown, func() {
		if err := resource.Close(); err != nil {
			fmt.Printf("%s teardown: %s\n", opts.Repository, err)
		}
	})
	return resource.GetPort(port)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func (s *ServerTestSuite) do(method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.endpoint+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Do(req)
}

func (s *ServerTestSuite) call(method, path string, body any, wantStatus int, out any) {
	resp, err := s.do(method, path, body)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().Equal(wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)
	if out != nil {
		s.Require().NoError(json.Unmarshal(raw, out))
	}
}

func (s *ServerTestSuite) TestRunLifecycleAndMetrics() {
	hr := 150.0
	toImport := []runs.Run{
		{ID: "strava_e2e_1", Snapshot: runs.Snapshot{
			DatetimeUTC: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), Type: runs.TypeOutdoorRun,
			Distance: 5, Duration: 3600, Source: runs.SourceStrava, AvgHeartRate: &hr,
		}},
		{ID: "strava_e2e_2", Snapshot: runs.Snapshot{
			DatetimeUTC: time.Date(2024, 10, 2, 12, 0, 0, 0, time.UTC), Type: runs.TypeOutdoorRun,
			Distance: 3, Duration: 1800, Source: runs.SourceStrava,
		}},
	}

	var imported runs.ImportResult
	s.call(http.MethodPost, "/runs/import", toImport, http.StatusCreated, &imported)
	s.Equal(runs.ImportResult{Inserted: 2}, imported)

	var total float64
	s.call(http.MethodGet, "/metrics/mileage/total?start=2024-10-01&end=2024-10-02", nil, http.StatusOK, &total)
	s.InDelta(8.0, total, 1e-9)

	// an edit invalidates the cached run list behind the metrics
	s.call(http.MethodPatch, "/runs/strava_e2e_2", map[string]any{
		"distance":   4.5,
		"changed_by": "ethan",
	}, http.StatusOK, nil)
	s.call(http.MethodGet, "/metrics/mileage/total?start=2024-10-01&end=2024-10-02", nil, http.StatusOK, &total)
	s.InDelta(9.5, total, 1e-9)

	// source is not editable and leaves no history behind
	s.call(http.MethodPatch, "/runs/strava_e2e_2", map[string]any{
		"source":     runs.SourceMapMyFitness,
		"changed_by": "ethan",
	}, http.StatusBadRequest, nil)

	var history []runs.HistoryRecord
	s.call(http.MethodGet, "/runs/strava_e2e_2/history", nil, http.StatusOK, &history)
	s.Require().Len(history, 2)
	s.Equal(2, history[0].VersionNumber)
	s.Equal(4.5, history[0].Distance)

	s.call(http.MethodDelete, "/runs/strava_e2e_2?deleted_by=ethan", nil, http.StatusOK, nil)
	s.call(http.MethodGet, "/runs/strava_e2e_2", nil, http.StatusNotFound, nil)
	s.call(http.MethodPost, "/runs/strava_e2e_2/undelete?restored_by=ethan", nil, http.StatusOK, nil)

	var restored runs.RestoreResponse
	s.call(http.MethodPost, "/runs/strava_e2e_2/restore/1?restored_by=ethan", nil, http.StatusOK, &restored)
	s.Equal(5, restored.Run.Version)
	s.Equal(3.0, restored.Run.Distance)

	var loads []struct {
		Date         string `json:"date"`
		TrainingLoad struct {
			CTL float64 `json:"ctl"`
			ATL float64 `json:"atl"`
		} `json:"training_load"`
	}
	s.call(http.MethodGet, "/metrics/training-load/by-day?start=2024-10-01&end=2024-10-02&max_hr=190&resting_hr=50&sex=M",
		nil, http.StatusOK, &loads)
	s.Require().Len(loads, 2)
	s.Greater(loads[0].TrainingLoad.ATL, loads[0].TrainingLoad.CTL)

	// writes so far: import, two patches (one rejected), delete, undelete, restore
	s.call(http.MethodPatch, "/runs/strava_e2e_1", map[string]any{
		"distance":   5.1,
		"changed_by": "ethan",
	}, http.StatusTooManyRequests, nil)
}
