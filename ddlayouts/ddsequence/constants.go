package ddsequence

// Label padding inside participant boxes
const LABEL_PADDING_X = 20.
const LABEL_PADDING_Y = 10.

const MIN_PARTICIPANT_WIDTH = 100.
const MIN_PARTICIPANT_HEIGHT = 40.

// actors are drawn as a stick figure above their label
const MIN_ACTOR_HEIGHT = 80.

// min horizontal pad for message labels, to consider the min distance between participants
const MIN_HORIZONTAL_PAD = 50.

// vertical pad added to message labels
const VERTICAL_PAD = 20.

// self messages loop back to their own lifeline
const SELF_MESSAGE_DISTANCE = 60.

// gap between the participant row and the first event
const HEADER_GAP = 20.

const NOTE_PADDING = 10.

// horizontal distance between a note and the lifeline it is placed against
const NOTE_GAP = 10.

const NOTE_MARGIN = 10.

const BLOCK_PADDING = 10.

// each level of nested blocks inside a block widens it by this much on both sides
const BLOCK_NESTED_INSET = 8.

const BLOCK_LABEL_PADDING = 6.

const SECTION_DIVIDER_GAP = 10.

const BLOCK_BOTTOM_PADDING = 10.

// lifelines extend past the last event
const LIFELINE_TAIL = 20.
