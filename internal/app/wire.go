package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"cryptocall/internal/callrequest"
	"cryptocall/internal/catalog"
	"cryptocall/internal/config"
	"cryptocall/internal/phoneinput"
	"cryptocall/internal/shell"
	"cryptocall/internal/wallet"
)

// Wire bundles everything a command may need. Optional parts are nil when
// their configuration is absent.
type Wire struct {
	Config    *config.AppConfig
	Logger    *zap.SugaredLogger
	Topics    catalog.Source
	Session   *wallet.Session
	Chain     *wallet.EthClient
	Balances  *wallet.BalanceProvider
	Submitter *callrequest.Submitter
	Phone     *phoneinput.Input

	closers []func()
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg *config.AppConfig, logger *zap.SugaredLogger) (*Wire, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	w := &Wire{
		Config: cfg,
		Logger: logger,
		Phone:  phoneinput.New(cfg.Phone.DefaultRegion),
	}

	topics, err := w.topicSource(ctx)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.Topics = topics

	if cfg.Chain.RPCURL != "" {
		eth, err := wallet.NewEthClient(ctx, cfg.Chain.RPCURL)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("chain client: %w", err)
		}
		w.closers = append(w.closers, eth.Close)
		w.Chain = eth
		w.Balances = wallet.NewBalanceProvider(eth, cfg.Chain.Symbol, cfg.Chain.Decimals)
	}

	connectors, err := w.connectors(ctx)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.Session = wallet.NewSession(connectors...)

	if cfg.Call.Endpoint != "" {
		sub, err := callrequest.NewSubmitter(cfg.Call.Endpoint,
			callrequest.WithHTTPClient(&http.Client{Timeout: cfg.Call.Timeout}),
			callrequest.WithLogger(logger.Named("callrequest")),
		)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.Submitter = sub
	}

	return w, nil
}

func (w *Wire) topicSource(ctx context.Context) (catalog.Source, error) {
	switch {
	case w.Config.Catalog.DSN != "":
		pg, err := catalog.NewPostgresSource(ctx, w.Config.Catalog.DSN)
		if err != nil {
			return nil, fmt.Errorf("topic database: %w", err)
		}
		w.closers = append(w.closers, pg.Close)
		return pg, nil
	case w.Config.Catalog.Path != "":
		return catalog.FileSource{Path: w.Config.Catalog.Path}, nil
	default:
		return catalog.Embedded(), nil
	}
}

func (w *Wire) connectors(ctx context.Context) ([]wallet.Connector, error) {
	var out []wallet.Connector
	wc := w.Config.Wallet

	if len(wc.StaticAddresses) > 0 {
		out = append(out, wallet.StaticConnector{
			ConnectorID:   slug(wc.ConnectorName),
			ConnectorName: wc.ConnectorName,
			Addresses:     wc.StaticAddresses,
		})
	}

	if wc.RPCConnectorURL != "" {
		node, err := wallet.NewEthClient(ctx, wc.RPCConnectorURL)
		if err != nil {
			return nil, fmt.Errorf("wallet rpc: %w", err)
		}
		w.closers = append(w.closers, node.Close)
		out = append(out, wallet.RPCConnector{
			ConnectorID:   slug(wc.RPCConnectorTag),
			ConnectorName: wc.RPCConnectorTag,
			Node:          node,
		})
	}
	return out, nil
}

// State builds the view state. It needs a configured call endpoint.
func (w *Wire) State() (*shell.State, error) {
	if w.Submitter == nil {
		return nil, errors.New("CRYPTOCALL_API_ENDPOINT is required")
	}
	var balances shell.BalanceSource
	if w.Balances != nil {
		balances = w.Balances
	}
	return shell.New(w.Session, w.Phone, w.Submitter, balances, w.Logger.Named("shell")), nil
}

// Close releases clients in reverse order of creation.
func (w *Wire) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
	w.closers = nil
}

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
