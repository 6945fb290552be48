// Package styles maps ranked scores to the visual attributes of word cloud
// labels: font size, colour and measured box.
//
// The winner always gets [WinnerFontSize] and [WinnerColor]. Field labels are
// normalized against the field's own score range into a linear size between
// [MinFontSize] and [MaxFontSize]; a flat range is floored at 1 so equal
// scores all land on the minimum. Colours are drawn at random, grey for
// labels without votes and pink/red otherwise. Colour never influences size
// or placement order.
package styles
