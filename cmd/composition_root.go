package cmd

import (
	"log/slog"
	"os"

	"loadboard/internal/adapters/in/http"
	"loadboard/internal/adapters/out/distance"
	"loadboard/internal/adapters/out/postgres"
	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	estimator  *distance.PlanarEstimator
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		estimator:  distance.NewPlanarEstimator(),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) CreateCreateLoadCommandHandler() commands.CreateLoadCommandHandler {
	var f commands.LoadUoWFactory = FuncLoadUoWFactory(func() commands.LoadUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateLoadCommandHandler(f, c.estimator, c.config.MaxWeightLbs)
}

func (c *CompositionRoot) CreateUpdateLoadCommandHandler() commands.UpdateLoadCommandHandler {
	var f commands.LoadUoWFactory = FuncLoadUoWFactory(func() commands.LoadUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLoadCommandHandler(f, c.config.MaxWeightLbs)
}

func (c *CompositionRoot) CreateDeleteLoadCommandHandler() commands.DeleteLoadCommandHandler {
	var f commands.LoadUoWFactory = FuncLoadUoWFactory(func() commands.LoadUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteLoadCommandHandler(f)
}

func (c *CompositionRoot) CreateListLoadsQueryHandler() queries.ListLoadsQueryHandler {
	return queries.NewListLoadsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLoadQueryHandler() queries.GetLoadQueryHandler {
	return queries.NewGetLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateLoadCommandHandler(),
		c.CreateUpdateLoadCommandHandler(),
		c.CreateDeleteLoadCommandHandler(),
		c.CreateListLoadsQueryHandler(),
		c.CreateGetLoadQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListLoadsQueryHandler(),
		c.CreateUpdateLoadCommandHandler(),
		c.config.ExpiryGrace,
		c.logger,
	)
}

type FuncLoadUoWFactory func() commands.LoadUoW

func (f FuncLoadUoWFactory) Create() commands.LoadUoW {
	return f()
}
