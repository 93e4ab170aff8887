package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/juliagrant/careshift/internal/config"
	"github.com/juliagrant/careshift/pkg/clients/identityclient"
	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Reranker *match.Reranker
	Identity identityclient.Issuer
	Logger   *zap.Logger
	Ctx      context.Context
}
