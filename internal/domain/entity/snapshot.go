package entity

// SnapshotName nombre del documento persistido (archivo, fila o clave).
const SnapshotName = "biocat-app"

// Snapshot es el agregado completo: unidad de persistencia, exportación y restauración.
type Snapshot struct {
	Inventory []Product `json:"inventory"`
	Clients   []Client  `json:"clients"`
	Orders    []Order   `json:"orders"`
	Auth      Auth      `json:"auth"`
	Theme     Theme     `json:"theme"`
	Settings  Settings  `json:"settings"`
}

// Clone devuelve una copia profunda; mutar la copia no afecta al original.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Inventory: make([]Product, len(s.Inventory)),
		Clients:   make([]Client, len(s.Clients)),
		Orders:    make([]Order, len(s.Orders)),
		Auth:      s.Auth,
		Theme:     s.Theme,
		Settings:  s.Settings,
	}
	copy(out.Inventory, s.Inventory)
	copy(out.Clients, s.Clients)
	for i, o := range s.Orders {
		out.Orders[i] = o.Clone()
	}
	return out
}

// Clone copia la orden incluyendo sus líneas y la fecha de completado.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderLine, len(o.Items))
		copy(c.Items, o.Items)
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// FindProduct devuelve el índice del producto o -1.
func (s *Snapshot) FindProduct(id string) int {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// FindClient devuelve el índice del cliente o -1.
func (s *Snapshot) FindClient(id string) int {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return i
		}
	}
	return -1
}

// FindOrder devuelve el índice de la orden o -1.
func (s *Snapshot) FindOrder(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

// ClientName nombre del cliente o "N/A" si la referencia quedó colgando.
func (s *Snapshot) ClientName(id string) string {
	if i := s.FindClient(id); i >= 0 {
		return s.Clients[i].Name
	}
	return UnknownClientName
}

// LowStockThreshold umbral vigente.
func (s *Snapshot) LowStockThreshold() int {
	return s.Settings.LowStockThreshold
}
