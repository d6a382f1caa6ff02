package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dashboard-api/internal/domain/entity"
	"dashboard-api/internal/domain/repository"
)

// ServiceRepository 服务凭据仓储实现
type ServiceRepository struct {
	client *Client
}

// NewServiceRepository 创建服务凭据仓储
func NewServiceRepository(client *Client) *ServiceRepository {
	return &ServiceRepository{client: client}
}

// List 按过滤条件获取服务凭据列表
func (r *ServiceRepository) List(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, error) {
	ctx, span := tracer.Start(ctx, "postgres.ServiceRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Service{})
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var services []*entity.Service
	if err := query.Order("id ASC").Find(&services).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Create 创建服务凭据
func (r *ServiceRepository) Create(ctx context.Context, svc *entity.Service) error {
	ctx, span := tracer.Start(ctx, "postgres.ServiceRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(svc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取服务凭据
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	ctx, span := tracer.Start(ctx, "postgres.ServiceRepository.GetByID")
	defer span.End()

	var svc entity.Service
	if err := r.client.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

// Update 保存服务凭据
func (r *ServiceRepository) Update(ctx context.Context, svc *entity.Service) error {
	ctx, span := tracer.Start(ctx, "postgres.ServiceRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(svc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update service: %w", err)
	}
	return nil
}

// HardDelete 物理删除服务凭据
func (r *ServiceRepository) HardDelete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ServiceRepository.HardDelete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Service{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete service: %w", err)
	}
	return nil
}
