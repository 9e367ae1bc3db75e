package deblender

import (
	"deblend-core/catalog"
	"deblend-core/image"
	"deblend-core/profile"
	"deblend-core/scene"
	"deblend-core/survey"
	"deblend-core/wcs"
)

func testSurvey() survey.Survey {
	return survey.Survey{
		Name:       "test",
		PixelScale: 0.2,
		Filters: []survey.Filter{
			{Name: "g", SkyLevel: 400},
			{Name: "r", SkyLevel: 900},
		},
	}
}

// testScene builds a noiseless-but-textured batch with one Gaussian per
// listed centre in every band. The deterministic ±0.5 pattern keeps the
// background estimator's rms away from zero.
func testScene(size int, perExample ...[][2]float64) *scene.Batch {
	sv := testSurvey()
	m := wcs.New(150.0, 2.0, sv.PixelScale, size)

	b := &scene.Batch{
		ID:        "test-batch",
		BatchSize: len(perExample),
		ImageSize: size,
		WCS:       m,
		Survey:    sv,
		Images:    make([]image.Cube, len(perExample)),
		Catalogs:  make([]catalog.Table, len(perExample)),
	}
	for i, centers := range perExample {
		cube := image.NewCube(sv.NBands(), size, size)
		for band := range cube {
			for y := range cube[band] {
				for x := range cube[band][y] {
					if (x+y)%2 == 0 {
						cube[band][y][x] = 0.5
					} else {
						cube[band][y][x] = -0.5
					}
				}
			}
		}
		var truth catalog.Table
		for _, c := range centers {
			for band := range cube {
				profile.AddGaussian(cube[band], c[0], c[1], 1.5, 900)
			}
			ra, dec := m.PixelToWorld(c[0], c[1])
			truth.Append(ra*3600, dec*3600, c[0], c[1])
		}
		b.Images[i] = cube
		b.Catalogs[i] = truth
	}
	return b
}
