package renderer

import (
	"GopherFPS/internal/logger"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100.0
)

var _ Render = (*OpenGLRenderer)(nil)

type OpenGLRenderer struct {
	defaultShader Shader
	lampShader    Shader
	Meshes        []*Mesh
	lampMesh      *Mesh
	whiteTexture  uint32 // bound when a material has no texture
	textures      []uint32
	width         int32
	height        int32
	clearColor    mgl32.Vec3
	Near          float32
	Far           float32
	frustum       Frustum
}

func NewOpenGLRenderer(near, far float32) *OpenGLRenderer {
	return &OpenGLRenderer{
		Near:       near,
		Far:        far,
		clearColor: mgl32.Vec3{0.1, 0.1, 0.1},
	}
}

func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "initializing OpenGL")
	}
	logger.Log.Info("OpenGL context", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	var undo Unwind
	defer undo.Unwind()

	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		return err
	}
	undo.Add(rend.defaultShader.Delete)

	rend.lampShader = InitLampShader()
	if err := rend.lampShader.Compile(); err != nil {
		return err
	}
	undo.Add(rend.lampShader.Delete)

	white, err := rend.CreateTextureFromImage(CheckerImage(1, 1, color.RGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 255}))
	if err != nil {
		return err
	}
	rend.whiteTexture = white

	rend.lampMesh = NewCubeMesh()
	rend.lampMesh.Name = "lamp"
	rend.lampMesh.SetScale(mgl32.Vec3{0.2, 0.2, 0.2})
	rend.uploadMesh(rend.lampMesh)

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Enable(gl.DEPTH_TEST)
	rend.UpdateViewport(width, height)

	undo.Discard()
	logger.Log.Info("OpenGL render initialized", zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (rend *OpenGLRenderer) AddMesh(mesh *Mesh) error {
	if mesh.VertexCount() == 0 {
		return errors.Errorf("mesh %q has no vertices", mesh.Name)
	}
	rend.uploadMesh(mesh)
	rend.Meshes = append(rend.Meshes, mesh)
	logger.Log.Debug("Mesh added", zap.String("mesh", mesh.Name), zap.Int("vertices", mesh.VertexCount()))
	return nil
}

func (rend *OpenGLRenderer) uploadMesh(mesh *Mesh) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	if len(mesh.Indices) > 0 {
		var ebo uint32
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
		mesh.EBO = ebo
	}

	stride := int32(FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	mesh.VAO = vao
	mesh.VBO = vbo
	mesh.UpdateModelMatrix()
}

func (rend *OpenGLRenderer) RemoveMesh(mesh *Mesh) {
	for i, m := range rend.Meshes {
		if m == mesh {
			rend.Meshes = append(rend.Meshes[:i], rend.Meshes[i+1:]...)
			rend.deleteMesh(mesh)
			break
		}
	}
}

func (rend *OpenGLRenderer) deleteMesh(mesh *Mesh) {
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
	if mesh.EBO != 0 {
		gl.DeleteBuffers(1, &mesh.EBO)
	}
	mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
}

func (rend *OpenGLRenderer) SetClearColor(c mgl32.Vec3) {
	rend.clearColor = c
}

func (rend *OpenGLRenderer) aspect() float32 {
	if rend.height == 0 {
		return 1
	}
	return float32(rend.width) / float32(rend.height)
}

func (rend *OpenGLRenderer) Render(camera *EulerCamera, lighting *Lighting) {
	gl.ClearColor(rend.clearColor.X(), rend.clearColor.Y(), rend.clearColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := camera.GetViewMatrix()
	projection := camera.GetProjectionMatrix(rend.aspect(), rend.Near, rend.Far)

	if FrustumCullingEnabled {
		rend.frustum = camera.CalculateFrustum(rend.aspect(), rend.Near, rend.Far)
	}

	shader := &rend.defaultShader
	shader.Use()
	u := shader.Uniforms()
	u.SetMat4("view", view)
	u.SetMat4("projection", projection)
	u.SetVec3("viewPos", camera.Position())
	u.SetInt("material.diffuse", 0)
	u.SetInt("material.specular", 1)
	rend.setLightUniforms(u, camera, lighting)

	for _, mesh := range rend.Meshes {
		mesh.UpdateModelMatrix()

		// Skip rendering if the mesh is outside the frustum
		if FrustumCullingEnabled {
			center, radius := mesh.WorldBoundingSphere()
			if !rend.frustum.IntersectsSphere(center, radius) {
				continue
			}
		}

		u.SetMat4("model", mesh.ModelMatrix)
		u.SetFloat("material.shininess", mesh.Material.Shininess)
		rend.bindTexture(gl.TEXTURE0, mesh.Material.DiffuseTexture)
		rend.bindTexture(gl.TEXTURE1, mesh.Material.SpecularTexture)

		rend.draw(mesh)
	}

	if lighting != nil && lighting.ShowLamps {
		rend.renderLamps(view, projection, lighting.Points)
	}
}

func (rend *OpenGLRenderer) renderLamps(view, projection mgl32.Mat4, lights []*Light) {
	shader := &rend.lampShader
	shader.Use()
	u := shader.Uniforms()
	u.SetMat4("view", view)
	u.SetMat4("projection", projection)

	for _, light := range lights {
		rend.lampMesh.SetPosition(light.Position)
		rend.lampMesh.UpdateModelMatrix()
		u.SetMat4("model", rend.lampMesh.ModelMatrix)
		u.SetVec3("lampColor", light.Specular)
		rend.draw(rend.lampMesh)
	}
}

func (rend *OpenGLRenderer) draw(mesh *Mesh) {
	gl.BindVertexArray(mesh.VAO)
	if len(mesh.Indices) > 0 {
		gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(mesh.VertexCount()))
	}
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) bindTexture(unit uint32, texture uint32) {
	if texture == 0 {
		texture = rend.whiteTexture
	}
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (rend *OpenGLRenderer) setLightUniforms(u *UniformCache, camera *EulerCamera, lighting *Lighting) {
	if lighting == nil {
		u.SetBool("hasDirLight", false)
		u.SetInt("pointLightCount", 0)
		u.SetBool("hasSpotLight", false)
		return
	}

	if d := lighting.Directional; d != nil {
		u.SetBool("hasDirLight", true)
		u.SetVec3("dirLight.direction", d.Direction)
		u.SetVec3("dirLight.ambient", d.Ambient)
		u.SetVec3("dirLight.diffuse", d.Diffuse)
		u.SetVec3("dirLight.specular", d.Specular)
	} else {
		u.SetBool("hasDirLight", false)
	}

	count := len(lighting.Points)
	if count > MaxPointLights {
		logger.Log.Warn("Too many point lights, extra lights ignored", zap.Int("count", count), zap.Int("max", MaxPointLights))
		count = MaxPointLights
	}
	u.SetInt("pointLightCount", int32(count))
	for i := 0; i < count; i++ {
		p := lighting.Points[i]
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetVec3(prefix+"position", p.Position)
		u.SetVec3(prefix+"ambient", p.Ambient)
		u.SetVec3(prefix+"diffuse", p.Diffuse)
		u.SetVec3(prefix+"specular", p.Specular)
		u.SetFloat(prefix+"constant", p.Constant)
		u.SetFloat(prefix+"linear", p.Linear)
		u.SetFloat(prefix+"quadratic", p.Quadratic)
	}

	if s := lighting.Spot; s != nil {
		s.attachToCamera(camera)
		u.SetBool("hasSpotLight", true)
		u.SetVec3("spotLight.position", s.Position)
		u.SetVec3("spotLight.direction", s.Direction)
		u.SetVec3("spotLight.ambient", s.Ambient)
		u.SetVec3("spotLight.diffuse", s.Diffuse)
		u.SetVec3("spotLight.specular", s.Specular)
		u.SetFloat("spotLight.constant", s.Constant)
		u.SetFloat("spotLight.linear", s.Linear)
		u.SetFloat("spotLight.quadratic", s.Quadratic)
		u.SetFloat("spotLight.cutOff", cosDeg(s.CutOff))
		u.SetFloat("spotLight.outerCutOff", cosDeg(s.OuterCutOff))
	} else {
		u.SetBool("hasSpotLight", false)
	}
}

func cosDeg(degrees float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(degrees))))
}

func (rend *OpenGLRenderer) CreateTextureFromImage(img image.Image) (uint32, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		// Convert to *image.RGBA if necessary
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return 0, errors.New("unsupported stride")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	rend.textures = append(rend.textures, textureID)
	return textureID, nil
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	rend.width = width
	rend.height = height
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, mesh := range rend.Meshes {
		rend.deleteMesh(mesh)
	}
	rend.Meshes = nil
	if rend.lampMesh != nil {
		rend.deleteMesh(rend.lampMesh)
	}
	if len(rend.textures) > 0 {
		gl.DeleteTextures(int32(len(rend.textures)), &rend.textures[0])
		rend.textures = nil
	}
	rend.defaultShader.Delete()
	rend.lampShader.Delete()
	logger.Log.Info("OpenGL renderer cleaned up")
}
