// SPDX-License-Identifier: Unlicense OR MIT

// Package gl describes the driver surface consumed by glsafe: typed object
// handles, enum values and the Functions interface a concrete OpenGL binding
// implements.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ALWAYS                                = 0x207
	ARRAY_BUFFER                          = 0x8892
	BACK                                  = 0x0405
	BLEND                                 = 0xbe2
	BYTE                                  = 0x1400
	CCW                                   = 0x901
	CLAMP_TO_EDGE                         = 0x812f
	COLOR_ATTACHMENT0                     = 0x8ce0
	COLOR_BUFFER_BIT                      = 0x4000
	COMPILE_STATUS                        = 0x8b81
	CULL_FACE                             = 0xb44
	CW                                    = 0x900
	DECR                                  = 0x1e03
	DECR_WRAP                             = 0x8508
	DEPTH_ATTACHMENT                      = 0x8d00
	DEPTH_BUFFER_BIT                      = 0x100
	DEPTH_COMPONENT                       = 0x1902
	DEPTH_COMPONENT16                     = 0x81a5
	DEPTH_COMPONENT24                     = 0x81A6
	DEPTH_COMPONENT32F                    = 0x8CAC
	DEPTH_STENCIL                         = 0x84f9
	DEPTH_STENCIL_ATTACHMENT              = 0x821a
	DEPTH_TEST                            = 0xb71
	DEPTH24_STENCIL8                      = 0x88f0
	DEPTH32F_STENCIL8                     = 0x8cad
	DRAW_FRAMEBUFFER                      = 0x8CA9
	DST_ALPHA                             = 0x304
	DST_COLOR                             = 0x306
	DYNAMIC_DRAW                          = 0x88E8
	ELEMENT_ARRAY_BUFFER                  = 0x8893
	EQUAL                                 = 0x202
	FALSE                                 = 0
	FIXED                                 = 0x140c
	FLOAT                                 = 0x1406
	FLOAT_32_UNSIGNED_INT_24_8_REV        = 0x8dad
	FRAGMENT_SHADER                       = 0x8b30
	FRAMEBUFFER                           = 0x8d40
	FRAMEBUFFER_COMPLETE                  = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT     = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER    = 0x8cdb
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACH = 0x8cd7
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER    = 0x8cdc
	FRAMEBUFFER_SRGB                      = 0x8db9
	FRAMEBUFFER_UNSUPPORTED               = 0x8cdd
	FRONT                                 = 0x404
	FRONT_AND_BACK                        = 0x408
	FUNC_ADD                              = 0x8006
	FUNC_REVERSE_SUBTRACT                 = 0x800b
	FUNC_SUBTRACT                         = 0x800a
	GEQUAL                                = 0x206
	GREATER                               = 0x204
	HALF_FLOAT                            = 0x140b
	INCR                                  = 0x1e02
	INCR_WRAP                             = 0x8507
	INFO_LOG_LENGTH                       = 0x8b84
	INT                                   = 0x1404
	INT_2_10_10_10_REV                    = 0x8d9f
	INVALID_ENUM                          = 0x500
	INVALID_FRAMEBUFFER_OPERATION         = 0x506
	INVALID_OPERATION                     = 0x502
	INVALID_VALUE                         = 0x501
	INVERT                                = 0x150a
	KEEP                                  = 0x1e00
	LEQUAL                                = 0x203
	LESS                                  = 0x201
	LINEAR                                = 0x2601
	LINES                                 = 0x1
	LINE_LOOP                             = 0x2
	LINE_STRIP                            = 0x3
	LINK_STATUS                           = 0x8b82
	LUMINANCE                             = 0x1909
	MAX                                   = 0x8008
	MAX_COLOR_ATTACHMENTS                 = 0x8cdf
	MAX_COMBINED_TEXTURE_IMAGE_UNITS      = 0x8b4d
	MAX_CUBE_MAP_TEXTURE_SIZE             = 0x851c
	MAX_DRAW_BUFFERS                      = 0x8824
	MAX_TEXTURE_SIZE                      = 0xd33
	MAX_VERTEX_ATTRIBS                    = 0x8869
	MIN                                   = 0x8007
	NEAREST                               = 0x2600
	NEVER                                 = 0x200
	NONE                                  = 0x0
	NOTEQUAL                              = 0x205
	NO_ERROR                              = 0x0
	ONE                                   = 0x1
	ONE_MINUS_DST_ALPHA                   = 0x305
	ONE_MINUS_DST_COLOR                   = 0x307
	ONE_MINUS_SRC_ALPHA                   = 0x303
	ONE_MINUS_SRC_COLOR                   = 0x301
	OUT_OF_MEMORY                         = 0x505
	PACK_ALIGNMENT                        = 0xd05
	POINTS                                = 0x0
	POLYGON_OFFSET_FILL                   = 0x8037
	QUERY_RESULT                          = 0x8866
	QUERY_RESULT_AVAILABLE                = 0x8867
	R16F                                  = 0x822d
	R32F                                  = 0x822e
	R8                                    = 0x8229
	READ_FRAMEBUFFER                      = 0x8ca8
	RED                                   = 0x1903
	REPLACE                               = 0x1e01
	RG                                    = 0x8227
	RG8                                   = 0x822b
	RGB                                   = 0x1907
	RGB8                                  = 0x8051
	RGBA                                  = 0x1908
	RGBA16F                               = 0x881a
	RGBA32F                               = 0x8814
	RGBA8                                 = 0x8058
	SCISSOR_TEST                          = 0xc11
	SHORT                                 = 0x1402
	SRC_ALPHA                             = 0x302
	SRC_COLOR                             = 0x300
	SRGB8_ALPHA8                          = 0x8c43
	STATIC_DRAW                           = 0x88e4
	STENCIL_ATTACHMENT                    = 0x8d20
	STENCIL_BUFFER_BIT                    = 0x00000400
	STENCIL_INDEX8                        = 0x8d48
	STENCIL_TEST                          = 0xb90
	STREAM_DRAW                           = 0x88e0
	TEXTURE_2D                            = 0xde1
	TEXTURE_CUBE_MAP                      = 0x8513
	TEXTURE_CUBE_MAP_NEGATIVE_X           = 0x8516
	TEXTURE_CUBE_MAP_NEGATIVE_Y           = 0x8518
	TEXTURE_CUBE_MAP_NEGATIVE_Z           = 0x851a
	TEXTURE_CUBE_MAP_POSITIVE_X           = 0x8515
	TEXTURE_CUBE_MAP_POSITIVE_Y           = 0x8517
	TEXTURE_CUBE_MAP_POSITIVE_Z           = 0x8519
	TEXTURE_MAG_FILTER                    = 0x2800
	TEXTURE_MIN_FILTER                    = 0x2801
	TEXTURE_WRAP_S                        = 0x2802
	TEXTURE_WRAP_T                        = 0x2803
	TEXTURE0                              = 0x84c0
	TIME_ELAPSED                          = 0x88BF
	TRIANGLES                             = 0x4
	TRIANGLE_FAN                          = 0x6
	TRIANGLE_STRIP                        = 0x5
	TRUE                                  = 1
	UNPACK_ALIGNMENT                      = 0xcf5
	UNSIGNED_BYTE                         = 0x1401
	UNSIGNED_INT                          = 0x1405
	UNSIGNED_INT_24_8                     = 0x84fa
	UNSIGNED_INT_2_10_10_10_REV           = 0x8368
	UNSIGNED_SHORT                        = 0x1403
	VERSION                               = 0x1f02
	VERTEX_SHADER                         = 0x8b31
	ZERO                                  = 0x0
)
