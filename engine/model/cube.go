package model

// cubeVertices are the eight corners of a 2x2x2 cube centred on the origin, each with its own colour.
var cubeVertices = []GPUVertex{
	{Position: [3]float32{-1, 1, 1}, Color: [3]float32{0, 1, 1}},
	{Position: [3]float32{-1, -1, 1}, Color: [3]float32{1, 1, 0}},
	{Position: [3]float32{1, -1, 1}, Color: [3]float32{1, 0, 1}},
	{Position: [3]float32{1, 1, 1}, Color: [3]float32{1, 1, 1}},
	{Position: [3]float32{1, 1, -1}, Color: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, -1, -1}, Color: [3]float32{0, 0, 1}},
	{Position: [3]float32{-1, -1, -1}, Color: [3]float32{1, 0, 0}},
	{Position: [3]float32{-1, 1, -1}, Color: [3]float32{0, 0, 0}},
}

// cubeIndices are two counter-clockwise triangles per face.
var cubeIndices = []uint16{
	0, 1, 2, 2, 3, 0, // front
	3, 2, 5, 5, 4, 3, // right
	4, 5, 6, 6, 7, 4, // back
	7, 6, 1, 1, 0, 7, // left
	2, 1, 6, 6, 5, 2, // bottom
	7, 0, 3, 3, 4, 7, // top
}

// NewCubeModel returns the coloured cube mesh: 8 vertices and 36 indices.
// Each call returns independent slices.
func NewCubeModel() Model {
	vertices := make([]GPUVertex, len(cubeVertices))
	copy(vertices, cubeVertices)
	indices := make([]uint16, len(cubeIndices))
	copy(indices, cubeIndices)

	return NewModel(
		WithName("cube"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}
