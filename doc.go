// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segdisplay is a container for the seven segment display drivers.
//
// segmux multiplexes a display wired on GPIO lines, segment holds the
// alphabet, segterm and segimage show the same patterns on a terminal or in
// an image, and nxp74hc595 lets the lines sit behind shift registers.
package segdisplay
