// Package tess approximates rational B-spline surfaces with triangles and
// quads, for rendering and export to mesh formats.
//
// # Surfaces
//
// [Surface] is a rational tensor-product B-spline surface with clamped knot
// vectors, built with [NewSurface] or [NewBezierSurface]. Control points are
// [HPoint] values in weighted coordinates. A surface whose first and last
// control rows coincide is closed in that direction; [Surface.Closed] detects
// this and the tessellation treats the shared edge as a seam.
//
// # Tessellation
//
// [Tessellate] recursively splits the surface into [Patch] values until each
// of them is flat within the requested tolerance, as judged by a [Scorer].
// Splits happen in three stages:
//
//   - Patches whose weights change sign or vanish, and which are therefore
//     unbounded, are bisected without looking at their shape.
//   - Patches with interior knots are split at their middle knot, so that
//     every leaf is a single polynomial piece and creases land exactly on
//     polygon edges.
//   - Remaining patches are split in the direction that improves flatness
//     the most, with a guard against long thin patches.
//
// Every patch occupies a box on a fixed integer grid over the parameter
// domain, and every grid point is evaluated at most once. Patches of
// different sizes meeting along an edge thus share exactly the same
// vertices, and larger patches pick up the extra vertices of their smaller
// neighbours. The result is free of cracks, including T-junctions.
//
// # Customization
//
// [Options] selects per-vertex normals and texture coordinates, and allows
// replacing the flatness test ([Scorer]), observing and pruning splits
// ([SplitHook]), building polygons ([TriangleMaker], [QuadMaker]) and
// receiving them one at a time ([Sink]).
//
// Normals aren't defined everywhere: at creases, at collapsed edges such as
// the poles of a sphere, and where derivatives vanish. Such vertices get a
// normal evaluated slightly inside the polygon or, failing that, the
// polygon's face normal.
//
// # Meshes
//
// Tessellate returns a polygon soup. [BuildMesh] welds it into an indexed
// [Mesh] by merging identical positions.
//
// # Literature
//
//   - [The NURBS Book] by Piegl and Tiller
//   - [Boehm's knot insertion algorithm]
//
// [The NURBS Book]: https://doi.org/10.1007/978-3-642-59223-2
// [Boehm's knot insertion algorithm]: https://doi.org/10.1016/0010-4485(80)90154-2
package tess
