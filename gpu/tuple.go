// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Tuple types are composite elements laid out as their fields in order,
// with Go struct alignment. They are uniform block compatible when all
// of their fields are (see [UniformCompatible]), and are typically used
// for interleaved vertex data:
//
//	type Vertex = gpu.Tuple2[math32.Vector2, math32.Vector3] // position, color

// Tuple2 is a composite of 2 values.
type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

// Tuple3 is a composite of 3 values.
type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

// Tuple4 is a composite of 4 values.
type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

// Tuple5 is a composite of 5 values.
type Tuple5[A, B, C, D, E any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
}

// Tuple6 is a composite of 6 values.
type Tuple6[A, B, C, D, E, F any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
}

// Tuple7 is a composite of 7 values.
type Tuple7[A, B, C, D, E, F, G any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
}

// Tuple8 is a composite of 8 values.
type Tuple8[A, B, C, D, E, F, G, H any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
}

// Tuple9 is a composite of 9 values.
type Tuple9[A, B, C, D, E, F, G, H, I any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
	V8 I
}
