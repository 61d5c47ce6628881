// Package imaging turns downloaded artwork into result thumbnails.
//
//	svc := imaging.NewImageService()
//	img, err := svc.Thumbnail(ctx, data, grid.ButtonWidth, grid.ButtonHeight)
//	if err != nil {
//	    // undecodable artwork: keep the placeholder
//	}
//	tile := imaging.AverageColor(img)
//
// Scaling uses golang.org/x/image/draw with the Catmull-Rom kernel.
package imaging
