package body

import "github.com/san-kum/orbitlab/internal/vec"

// DefaultSolarSystem returns the built-in 11-body solar system: the Sun,
// the nine classically listed planets and the Moon. State vectors are
// heliocentric-epoch values from the NASA JPL Horizons ephemeris, in kg,
// m and m/s. Used whenever a configuration yields no bodies.
func DefaultSolarSystem() []*Body {
	return []*Body{
		New("The Sun", 1.989e30,
			vec.New3(0, 0, 0),
			vec.New3(1.998619875971241, 1.177175852520643e1, -6.135600299763972e-2)),
		New("Mercury", 3.3011e23,
			vec.New3(1.275387239870491e+10, -6.680195324480709e+10, -6.616376210554786e+09),
			vec.New3(3.815800795678611e+04, 1.123692837720359e+04, -2.583452372780768e+03)),
		New("Venus", 4.867e24,
			vec.New3(-8.073224723501202e+10, 7.027586666429530e+10, 5.627818208653621e+09),
			vec.New3(-2.299827401900994e+04, -2.669115882767952e+04, 9.610940692989782e+02)),
		New("Earth", 5.972e24,
			vec.New3(4.788721549926552e+10, 1.398390053760727e+11, -2.917617879798263e+07),
			vec.New3(-2.869322295421606e+04, 9.472398427890313e+03, -1.294094780725619)),
		New("The Moon", 734.9e20,
			vec.New3(4.749196053391321e+10, 1.399182076993898e+11, -3.486943982706219e+07),
			vec.New3(-2.890724003060377e+04, 8.531016069261970e+03, 8.300527233703736e+01)),
		New("Mars", 6.4171e23,
			vec.New3(-2.360304784158461e+11, 7.782743203688863e+10, 7.409494561464485e+09),
			vec.New3(-6.646816636079097e+03, -2.094094408471671e+04, -2.759397656641038e+02)),
		New("Jupiter", 1.89813e27,
			vec.New3(-7.635337060440624e+11, 2.666352191711917e+11, 1.596697237644111e+10),
			vec.New3(-4.459151830811911e+03, -1.171879602036105e+04, 1.485480013373461e+02)),
		New("Saturn", 5.68319e26,
			vec.New3(-5.754602000703751e+11, -1.380800977297312e+12, 4.691113811667019e+10),
			vec.New3(8.388118620089763e+03, -3.745812490969359e+03, -2.682504240279582e+02)),
		New("Uranus", 86.8103e24,
			vec.New3(2.828705362370189e+12, 9.657796340541244e+11, -3.305961929341555e+10),
			vec.New3(-2.249907923122420e+03, 6.127203368970902e+03, 5.166083013695255e+01)),
		New("Neptune", 102.41e24,
			vec.New3(4.177286553745139e+12, -1.624410031732890e+12, -6.281810904534376e+10),
			vec.New3(1.934495516018552e+03, 5.098519902111810e+03, -1.496666233625485e+02)),
		New("Pluto", 1.308e22,
			vec.New3(1.263871593868758e+12, -4.769395770475431e+12, 1.447666788459496e+11),
			vec.New3(5.347856858111191e+03, 2.674281760600502e+02, -1.564505494419083e+03)),
	}
}
