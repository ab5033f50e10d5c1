package cmd

import (
	"fmt"
	"net/url"

	httpin "purchasing/internal/adapters/in/http"
	"purchasing/internal/adapters/out/memory"
	"purchasing/internal/adapters/out/postgres"
	"purchasing/internal/adapters/out/postgres/sequencerepo"
	"purchasing/internal/adapters/out/postgres/userrepo"
	redisseq "purchasing/internal/adapters/out/redis/sequence"
	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/services"
	"purchasing/internal/core/ports"
	"purchasing/internal/jobs"

	"github.com/bsm/redislock"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	redis      redis.UniversalClient
	log        *logrus.Logger
	uowFactory postgres.GormUnitOfWorkFactory
	counter    ports.SequenceCounter
	workflow   services.OrderWorkflow
}

// NewCompositionRoot wires the adapters selected by cfg. redisClient may be nil unless
// the redis sequence backend is configured.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.UniversalClient, log *logrus.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		redis:      redisClient,
		log:        log,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		workflow:   services.NewOrderWorkflow(cfg.RequireApproverRole, cfg.ReceiveRequiresApproval),
	}

	switch cfg.SequenceBackend {
	case SequenceBackendPostgres:
		c.counter = sequencerepo.NewGormSequenceCounter(gormDB, ports.OrderNumberCounterKey)
	case SequenceBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("sequence backend %q needs a redis client", cfg.SequenceBackend)
		}
		c.counter = redisseq.NewRedisSequenceCounter(redisClient, ports.OrderNumberCounterKey)
	case SequenceBackendMemory:
		c.counter = memory.NewSequenceCounter(0)
	default:
		return nil, fmt.Errorf("unknown sequence backend %q", cfg.SequenceBackend)
	}

	return c, nil
}

func (c *CompositionRoot) SequenceCounter() ports.SequenceCounter {
	return c.counter
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.counter)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderFieldsCommandHandler() *commands.UpdateOrderFieldsCommandHandler {
	h := commands.NewUpdateOrderFieldsCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.workflow)
	return &h
}

func (c *CompositionRoot) CreateReceiveOrderCommandHandler() *commands.ReceiveOrderCommandHandler {
	h := commands.NewReceiveOrderCommandHandler(c.orderUoWFactory(), c.workflow)
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

// CreateGetOrderQueryHandler reads through a repository outside any transaction.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.UserDirectory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) UserDirectory() *userrepo.GormUserDirectory {
	return userrepo.NewGormUserDirectory(c.gormDB)
}

// CreateRouter builds the echo instance serving the API, the docs and the proxy.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	getOrder := c.CreateGetOrderQueryHandler()
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderFields: c.CreateUpdateOrderFieldsCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		ReceiveOrder:      c.CreateReceiveOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		GetOrder:          getOrder,
		DescribeOrder:     getOrder,
		ListOrders:        c.CreateListOrdersQueryHandler(),
	}, c.cfg.ListMaxLimit)

	validator := httpin.NewRequestValidator()
	opts := httpin.RouterOptions{
		Server:           server,
		Authenticator:    httpin.NewAuthenticator([]byte(c.cfg.JWTSecret), validator),
		Validator:        validator,
		Log:              c.log,
		ValidateRequests: c.cfg.OpenAPIValidation,
	}

	if c.cfg.ProductSearchURL != "" {
		target, err := url.Parse(c.cfg.ProductSearchURL)
		if err != nil {
			return nil, fmt.Errorf("product search url: %w", err)
		}
		opts.ProductSearch = httpin.NewProductSearchProxy(target, c.cfg.ProductSearchTimeout)
	}

	return httpin.NewRouter(opts)
}

// CreateJobManager returns the background jobs. The reconcile job is left out when
// its schedule is empty or the counter lives in process memory.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.cfg.SequenceReconcileSchedule == "" || c.cfg.SequenceBackend == SequenceBackendMemory {
		return jobs.NewJobManager()
	}

	var locker *redislock.Client
	if c.redis != nil {
		locker = redislock.New(c.redis)
	}

	return jobs.NewJobManager(c.CreateSequenceReconcileJob(locker))
}

func (c *CompositionRoot) CreateSequenceReconcileJob(locker *redislock.Client) *jobs.SequenceReconcileJob {
	return jobs.NewSequenceReconcileJob(
		c.uowFactory.Create().OrderRepository(),
		c.counter,
		locker,
		c.cfg.SequenceReconcileSchedule,
		c.log,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
