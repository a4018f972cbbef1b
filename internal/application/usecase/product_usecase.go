package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// Etiquetas alternativas aceptadas al importar (encabezados de la planilla original).
var (
	importNameKeys     = []string{"name", "Nombre"}
	importQuantityKeys = []string{"quantity", "Cantidad"}
	importCostKeys     = []string{"cost", "Costo"}
	importPriceKeys    = []string{"price", "Precio de Venta"}
	importLocationKeys = []string{"location", "Ubicacion", "Ubicación"}
)

// ProductUseCase casos de uso del catálogo. El stock solo cambia aquí o al completar una orden.
type ProductUseCase struct {
	ws    ports.Workspace
	ids   ledger.IDGenerator
	clock ledger.Clock
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(ws ports.Workspace, ids ledger.IDGenerator, clock ledger.Clock, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{ws: ws, ids: ids, clock: clock, log: log.Component("products")}
}

// Add crea un producto y lo inserta al inicio del catálogo.
func (uc *ProductUseCase) Add(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		p := uc.newProduct(in.Name, in.Quantity, in.Cost, in.Price, in.Location)
		draft.Inventory = append([]entity.Product{p}, draft.Inventory...)
		out = dto.NewProductResponse(p, draft.LowStockThreshold())
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", out.ID).Int("quantity", out.Quantity).Msg("producto creado")
	return &out, nil
}

func (uc *ProductUseCase) newProduct(name string, quantity, cost, price any, location string) entity.Product {
	now := uc.clock.Now()
	return entity.Product{
		ID:        uc.ids.NewID(),
		Name:      orDefault(name, entity.DefaultProductName),
		Quantity:  ledger.SanitizeQuantity(quantity),
		Cost:      ledger.SanitizeAmount(cost),
		Price:     ledger.SanitizeAmount(price),
		Location:  orDefault(location, entity.DefaultProductLocation),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update aplica cambios parciales. Cantidad, costo y precio se vuelven a sanear aunque
// no vengan en la petición. Si el id no existe devuelve nil, nil.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindProduct(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		p := &draft.Inventory[i]
		if in.Name != nil {
			p.Name = orDefault(*in.Name, entity.DefaultProductName)
		}
		if in.Location != nil {
			p.Location = orDefault(*in.Location, entity.DefaultProductLocation)
		}
		p.Quantity = ledger.SanitizeQuantity(coalesce(in.Quantity, p.Quantity))
		p.Cost = ledger.SanitizeAmount(coalesce(in.Cost, p.Cost))
		p.Price = ledger.SanitizeAmount(coalesce(in.Price, p.Price))
		p.UpdatedAt = uc.clock.Now()
		res := dto.NewProductResponse(*p, draft.LowStockThreshold())
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove elimina el producto si existe. Las órdenes que lo referencian no cambian.
func (uc *ProductUseCase) Remove(ctx context.Context, id string) error {
	return uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindProduct(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		draft.Inventory = append(draft.Inventory[:i], draft.Inventory[i+1:]...)
		return nil
	})
}

// Clear vacía el catálogo.
func (uc *ProductUseCase) Clear(ctx context.Context) error {
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Inventory = []entity.Product{}
		return nil
	})
	if err == nil {
		uc.log.Warn().Msg("inventario vaciado")
	}
	return err
}

// GetByID obtiene un producto por ID; nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		if i := s.FindProduct(id); i >= 0 {
			res := dto.NewProductResponse(s.Inventory[i], s.LowStockThreshold())
			out = &res
		}
	})
	return out, err
}

// List lista el catálogo en su orden actual (más recientes primero).
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	return uc.list(ctx, func(entity.Product, int) bool { return true })
}

// LowStock lista los productos con cantidad menor al umbral configurado.
func (uc *ProductUseCase) LowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	return uc.list(ctx, func(p entity.Product, threshold int) bool { return p.IsLowStock(threshold) })
}

func (uc *ProductUseCase) list(ctx context.Context, keep func(entity.Product, int) bool) (*dto.ProductListResponse, error) {
	out := &dto.ProductListResponse{Items: []dto.ProductResponse{}}
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		threshold := s.LowStockThreshold()
		for _, p := range s.Inventory {
			if keep(p, threshold) {
				out.Items = append(out.Items, dto.NewProductResponse(p, threshold))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	out.Total = len(out.Items)
	return out, nil
}

// Import inserta registros externos ya parseados con las reglas de Add, aceptando los
// encabezados alternativos en español. Devuelve la cantidad insertada.
func (uc *ProductUseCase) Import(ctx context.Context, records []map[string]any) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		imported := make([]entity.Product, 0, len(records))
		for _, r := range records {
			imported = append(imported, uc.newProduct(
				textField(r, importNameKeys...),
				numberField(r, importQuantityKeys...),
				numberField(r, importCostKeys...),
				numberField(r, importPriceKeys...),
				textField(r, importLocationKeys...),
			))
		}
		draft.Inventory = append(imported, draft.Inventory...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int("count", len(records)).Msg("productos importados")
	return len(records), nil
}

// textField devuelve el primer valor no vacío entre las claves dadas.
func textField(r map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			s = fmt.Sprint(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// numberField devuelve el valor de la primera clave presente (sin sanear).
func numberField(r map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func coalesce(v, current any) any {
	if v == nil {
		return current
	}
	return v
}
