//go:build integration

package relay_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"govassist/internal/audit"
	"govassist/internal/audit/relay"
	"govassist/pkg/testutil/containers"
)

const testTopic = "govassist.audit.test"

type RelaySuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
}

func TestRelaySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())

	client, err := relay.NewClient([]string{s.redpanda.Broker})
	s.Require().NoError(err)
	s.client = client
}

func (s *RelaySuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *RelaySuite) TestRelayOnceShipsAndMarks() {
	ctx := context.Background()
	outbox := audit.NewMemoryOutbox()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	publisher := audit.NewOutboxPublisher(outbox)
	s.Require().NoError(publisher.Emit(ctx, audit.Event{
		Action:  audit.ActionLoginFailed,
		Subject: "alice",
		Reason:  "invalid credentials",
	}))
	s.Require().NoError(publisher.Emit(ctx, audit.Event{
		Action:   audit.ActionEligibilityEvaluated,
		Subject:  "applicant-1",
		Decision: "eligible",
	}))

	r := relay.New(outbox, s.client, testTopic, time.Second, 100, logger)

	shipped, err := r.RelayOnce(ctx)
	s.Require().NoError(err)
	s.Equal(2, shipped)

	// Marked batches are not re-sent.
	shipped, err = r.RelayOnce(ctx)
	s.Require().NoError(err)
	s.Zero(shipped)

	// The topic now exists and holds both events.
	adminClient := kadm.NewClient(s.client)
	topics, err := adminClient.ListTopics(ctx)
	s.Require().NoError(err)
	s.True(topics.Has(testTopic))

	events := s.consume(ctx, 2)
	actions := map[audit.Action]bool{}
	for _, e := range events {
		actions[e.Action] = true
		s.NotEmpty(e.ID)
		s.NotEmpty(e.Category)
	}
	s.True(actions[audit.ActionLoginFailed])
	s.True(actions[audit.ActionEligibilityEvaluated])
}

// consume reads n events from the test topic with a fresh consumer.
func (s *RelaySuite) consume(ctx context.Context, n int) []audit.Event {
	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	deadline, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var events []audit.Event
	for len(events) < n {
		fetches := consumer.PollFetches(deadline)
		s.Require().NoError(fetches.Err())
		fetches.EachRecord(func(record *kgo.Record) {
			var e audit.Event
			s.Require().NoError(gojson.Unmarshal(record.Value, &e))
			events = append(events, e)
		})
	}
	return events
}
