package sequencerepo_test

import (
	"context"
	"sync"
	"testing"

	"purchasing/internal/adapters/out/postgres/sequencerepo"
	"purchasing/internal/core/ports"
	"purchasing/internal/pkg/testpg"

	"github.com/stretchr/testify/suite"
)

type CounterIntegrationTestSuite struct {
	suite.Suite
	database *testpg.Database
	counter  *sequencerepo.GormSequenceCounter
}

func (suite *CounterIntegrationTestSuite) SetupSuite() {
	database, err := testpg.Start(context.Background(), &sequencerepo.CounterDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CounterIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("counters"))
	suite.counter = sequencerepo.NewGormSequenceCounter(suite.database.DB, ports.OrderNumberCounterKey)
}

func (suite *CounterIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *CounterIntegrationTestSuite) TestNext_StartsAtOneAndIncrements() {
	ctx := suite.T().Context()

	current, err := suite.counter.Current(ctx)
	suite.Require().NoError(err)
	suite.Zero(current)

	for want := int64(1); want <= 3; want++ {
		got, err := suite.counter.Next(ctx)
		suite.Require().NoError(err)
		suite.Equal(want, got)
	}
}

func (suite *CounterIntegrationTestSuite) TestNext_ConcurrentCallersGetDistinctValues() {
	ctx := suite.T().Context()
	const callers = 40

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values = make(map[int64]struct{}, callers)
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := suite.counter.Next(ctx)
			suite.NoError(err)
			mu.Lock()
			values[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	suite.Len(values, callers)
	current, err := suite.counter.Current(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(callers), current)
}

func (suite *CounterIntegrationTestSuite) TestEnsureAtLeast_NeverLowers() {
	ctx := suite.T().Context()

	suite.Require().NoError(suite.counter.EnsureAtLeast(ctx, 41))
	next, err := suite.counter.Next(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(42), next)

	suite.Require().NoError(suite.counter.EnsureAtLeast(ctx, 10))
	current, err := suite.counter.Current(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(42), current)
}

func (suite *CounterIntegrationTestSuite) TestCountersAreIndependent() {
	ctx := suite.T().Context()
	other := sequencerepo.NewGormSequenceCounter(suite.database.DB, "other")

	_, err := suite.counter.Next(ctx)
	suite.Require().NoError(err)
	v, err := other.Next(ctx)
	suite.Require().NoError(err)

	suite.Equal(int64(1), v)
}

func TestCounterIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CounterIntegrationTestSuite))
}
