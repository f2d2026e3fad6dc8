package dashboard

import (
	"context"
	"sync"

	"motopartes/internal/domain"
	"motopartes/internal/modules/catalog"

	"github.com/cockroachdb/errors"
)

var ErrNoPendingDelete = errors.New("no product selected for deletion")

const titleDeleted = "Producto eliminado"

// InventoryView backs the admin product list: search term, per-row gallery
// position and the delete confirmation dialog.
type InventoryView struct {
	client *Client

	mu         sync.Mutex
	props      catalog.ListProps
	images     map[int64]int
	total      int
	deleting   int64
	dialogOpen bool
}

func NewInventoryView(client *Client) *InventoryView {
	return &InventoryView{client: client, images: make(map[int64]int)}
}

// Search loads the rows matching q. An empty q lists everything.
func (v *InventoryView) Search(ctx context.Context, q string) error {
	props, err := v.client.Products(ctx, q)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.props = *props
	v.total = props.Total
	v.images = make(map[int64]int, len(props.Productos))
	v.mu.Unlock()
	return nil
}

func (v *InventoryView) Props() catalog.ListProps {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := v.props
	p.Productos = append([]catalog.ProductView(nil), v.props.Productos...)
	return p
}

func (v *InventoryView) find(id int64) (int, bool) {
	for i := range v.props.Productos {
		if v.props.Productos[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func galleryOf(pv catalog.ProductView) *domain.Product {
	p := &domain.Product{ImagenPrincipal: pv.ImagenPrincipal}
	for _, img := range pv.ImagenesAdicionales {
		p.ImagenesAdicionales = append(p.ImagenesAdicionales, domain.AdditionalImage{URL: img.URL, Estilo: img.Estilo})
	}
	return p
}

// Image returns the gallery image currently shown for a row.
func (v *InventoryView) Image(id int64) (catalog.ImageResult, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.imageLocked(id)
}

func (v *InventoryView) imageLocked(id int64) (catalog.ImageResult, bool) {
	i, ok := v.find(id)
	if !ok {
		return catalog.ImageResult{}, false
	}
	p := galleryOf(v.props.Productos[i])
	idx := v.images[id]
	return catalog.ImageResult{
		Index: idx,
		URL:   catalog.ResolveImage(p, idx),
		Label: catalog.ImageLabel(p, idx),
		Total: p.ImageCount(),
	}, true
}

// CycleImage steps a row's gallery and returns the image now shown.
func (v *InventoryView) CycleImage(id int64, dir catalog.Direction) (catalog.ImageResult, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i, ok := v.find(id)
	if !ok {
		return catalog.ImageResult{}, false
	}
	v.images[id] = catalog.CycleImage(galleryOf(v.props.Productos[i]), v.images[id], dir)
	return v.imageLocked(id)
}

// ConfirmDelete opens the confirmation dialog for a row.
func (v *InventoryView) ConfirmDelete(id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.find(id); !ok {
		return false
	}
	v.deleting = id
	v.dialogOpen = true
	return true
}

func (v *InventoryView) CancelDelete() {
	v.mu.Lock()
	v.deleting = 0
	v.dialogOpen = false
	v.mu.Unlock()
}

func (v *InventoryView) DialogOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dialogOpen
}

// Delete removes the product selected in the dialog. The dialog closes
// and the row goes away only once the server confirms; on failure both
// stay so the operator can retry or cancel.
func (v *InventoryView) Delete(ctx context.Context) (Notice, error) {
	v.mu.Lock()
	id := v.deleting
	v.mu.Unlock()

	if id == 0 {
		return failure(titleFailed, catalog.MsgDeleteFailed), ErrNoPendingDelete
	}

	msg, err := v.client.DeleteProduct(ctx, id)
	if err != nil {
		return failure(titleFailed, catalog.MsgDeleteFailed), err
	}

	v.mu.Lock()
	if v.deleting == id {
		v.deleting = 0
		v.dialogOpen = false
	}
	if i, ok := v.find(id); ok {
		v.props.Productos = append(v.props.Productos[:i:i], v.props.Productos[i+1:]...)
		delete(v.images, id)
		if len(v.props.Productos) == 0 {
			v.props.EmptyMessage = catalog.EmptyListMessage
		}
	}
	v.total--
	if v.total < 0 {
		v.total = 0
	}
	v.props.CountLabel = catalog.CountLabel(v.total)
	v.mu.Unlock()

	if msg == "" {
		msg = catalog.MsgDeleted
	}
	return success(titleDeleted, msg), nil
}
