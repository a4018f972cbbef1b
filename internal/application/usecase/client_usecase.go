package usecase

import (
	"context"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// ClientUseCase casos de uso del directorio de clientes.
type ClientUseCase struct {
	ws    ports.Workspace
	ids   ledger.IDGenerator
	clock ledger.Clock
	log   *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(ws ports.Workspace, ids ledger.IDGenerator, clock ledger.Clock, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{ws: ws, ids: ids, clock: clock, log: log.Component("clients")}
}

// Add crea un cliente y lo inserta al inicio del directorio.
func (uc *ClientUseCase) Add(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := uc.clock.Now()
	c := entity.Client{
		ID:        uc.ids.NewID(),
		Name:      orDefault(in.Name, entity.DefaultClientName),
		Phone:     orDefault(in.Phone, entity.DefaultClientPhone),
		Address:   orDefault(in.Address, entity.DefaultClientAddress),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Clients = append([]entity.Client{c}, draft.Clients...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Msg("cliente creado")
	out := dto.NewClientResponse(c)
	return &out, nil
}

// Update aplica cambios parciales; nil, nil si el cliente no existe.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	var out *dto.ClientResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindClient(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		c := &draft.Clients[i]
		if in.Name != nil {
			c.Name = orDefault(*in.Name, entity.DefaultClientName)
		}
		if in.Phone != nil {
			c.Phone = orDefault(*in.Phone, entity.DefaultClientPhone)
		}
		if in.Address != nil {
			c.Address = orDefault(*in.Address, entity.DefaultClientAddress)
		}
		c.UpdatedAt = uc.clock.Now()
		res := dto.NewClientResponse(*c)
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove elimina el cliente si existe. Sus órdenes quedan con la referencia colgando.
func (uc *ClientUseCase) Remove(ctx context.Context, id string) error {
	return uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindClient(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		draft.Clients = append(draft.Clients[:i], draft.Clients[i+1:]...)
		return nil
	})
}

// Clear vacía el directorio.
func (uc *ClientUseCase) Clear(ctx context.Context) error {
	return uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Clients = []entity.Client{}
		return nil
	})
}

// GetByID obtiene un cliente; nil, nil si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	var out *dto.ClientResponse
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		if i := s.FindClient(id); i >= 0 {
			res := dto.NewClientResponse(s.Clients[i])
			out = &res
		}
	})
	return out, err
}

// List lista los clientes (más recientes primero).
func (uc *ClientUseCase) List(ctx context.Context) (*dto.ClientListResponse, error) {
	out := &dto.ClientListResponse{Items: []dto.ClientResponse{}}
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		for _, c := range s.Clients {
			out.Items = append(out.Items, dto.NewClientResponse(c))
		}
	})
	if err != nil {
		return nil, err
	}
	out.Total = len(out.Items)
	return out, nil
}

// ResolveName nombre del cliente o "N/A" si no existe.
func (uc *ClientUseCase) ResolveName(ctx context.Context, id string) (string, error) {
	name := entity.UnknownClientName
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		name = s.ClientName(id)
	})
	return name, err
}
