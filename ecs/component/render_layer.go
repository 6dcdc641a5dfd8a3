package component

// RenderLayer orders drawing; lower layers draw first, ties by entity.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
