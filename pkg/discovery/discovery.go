package discovery

import (
	"context"
	"fmt"

	"github.com/example/storefront/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

const leaseTTLSeconds = 30

type ServiceDiscovery struct {
	client *clientv3.Client
	config *config.EtcdConfig
	logger *zap.Logger
}

type ServiceInstance struct {
	Name string
	Host string
	Port int
}

func (i *ServiceInstance) Addr() string {
	return fmt.Sprintf("%s:%d", i.Host, i.Port)
}

// Key is the etcd key an instance is registered under:
// <prefix><name>/<host>:<port>.
func Key(prefix string, instance *ServiceInstance) string {
	return fmt.Sprintf("%s%s/%s", prefix, instance.Name, instance.Addr())
}

// Registration keeps an instance's lease alive until Deregister is called.
type Registration struct {
	sd       *ServiceDiscovery
	key      string
	leaseID  clientv3.LeaseID
	stopKeep context.CancelFunc
}

func NewServiceDiscovery(cfg *config.EtcdConfig, logger *zap.Logger) (*ServiceDiscovery, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &ServiceDiscovery{
		client: cli,
		config: cfg,
		logger: logger,
	}, nil
}

func (sd *ServiceDiscovery) Register(ctx context.Context, instance *ServiceInstance) (*Registration, error) {
	key := Key(sd.config.Prefix, instance)

	lease, err := sd.client.Grant(ctx, leaseTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}

	if _, err := sd.client.Put(ctx, key, instance.Addr(), clientv3.WithLease(lease.ID)); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}

	keepCtx, cancel := context.WithCancel(context.Background())
	ch, err := sd.client.KeepAlive(keepCtx, lease.ID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to keep alive: %w", err)
	}

	go func() {
		for range ch {
		}
		sd.logger.Info("Lease keep-alive stopped", zap.String("key", key))
	}()

	return &Registration{sd: sd, key: key, leaseID: lease.ID, stopKeep: cancel}, nil
}

func (r *Registration) Deregister(ctx context.Context) error {
	r.stopKeep()
	if _, err := r.sd.client.Revoke(ctx, r.leaseID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}
	return nil
}

func (sd *ServiceDiscovery) Close() error {
	return sd.client.Close()
}
