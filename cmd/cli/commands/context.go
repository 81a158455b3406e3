package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/internal/config"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	Advisory  services.AdvisoryClient
	Publisher *notify.Publisher
	Logger    *zap.Logger
	Ctx       context.Context
}
