package layout

// Names of geometry properties of an item.
const (
	PropX             = "x"
	PropY             = "y"
	PropWidth         = "width"
	PropHeight        = "height"
	PropContentWidth  = "contentWidth"
	PropContentHeight = "contentHeight"
)

// Milestone flags of an item. FlagDone and FlagContainerLayoutDone are
// maintained by the context; the children flags are for use by layouts.
const (
	FlagDone                  = "done"
	FlagContainerLayoutDone   = "containerLayoutDone"
	FlagComponentChildrenDone = "componentChildrenDone"
	FlagContainerChildrenDone = "containerChildrenDone"
)

// isSurfaceProp is true for properties which are written to the rendered
// surface during a flush. All other properties are never dirty.
func isSurfaceProp(name string) bool {
	switch name {
	case PropX, PropY, PropWidth, PropHeight:
		return true
	}
	return false
}

// Style names for the box edges, in box order.
var (
	marginStyles  = [4]string{"margin-top", "margin-right", "margin-bottom", "margin-left"}
	borderStyles  = [4]string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"}
	paddingStyles = [4]string{"padding-top", "padding-right", "padding-bottom", "padding-left"}
)
