package ddlayered

// Label padding inside a node
const LABEL_PADDING_X = 24.
const LABEL_PADDING_Y = 16.

const MIN_NODE_WIDTH = 60.
const MIN_NODE_HEIGHT = 36.

// Self loops leave and enter the right side of a node, this far above and below its center
// relative to its half width.
const SELF_LOOP_SPREAD = 0.5
