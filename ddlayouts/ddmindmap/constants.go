package ddmindmap

// font size of the root, relative to the body font size
const ROOT_FONT_SCALE = 1.4

// font size of nodes two or more levels deep, relative to the body font size
const DEEP_FONT_SCALE = 0.875

const LABEL_PADDING_X = 16.
const LABEL_PADDING_Y = 8.

// size returned for a mindmap without a root
const EMPTY_WIDTH = 100.
const EMPTY_HEIGHT = 50.
