// Package profile builds color lookup tables from a chain of color profiles.
//
// A chain starts with a device profile (an ICC input profile, or the output
// profile itself when no input profile is configured), passes through zero or
// more abstract profiles that edit colors in the profile connection space,
// and ends with a device output profile. The chain is compiled into a
// [Transform] that maps packed 8-bit RGB pixels in place.
//
// ICC parsing and device/PCS conversion use seehuhn.de/go/icc. The synthetic
// brightness/contrast/hue/saturation profile is sampled on a Lab grid with the
// same adjustment formula as Little CMS abstract BCHSW profiles.
package profile
